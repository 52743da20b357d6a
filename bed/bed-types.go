// monomap: a tool for mapping tandem-repeat monomers onto genome assemblies.
// Copyright (c) 2021 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/monomap/blob/master/LICENSE.txt>.

// Package bed implements the nine-column BED interval annotation
// format monomap writes. See
// https://genome.ucsc.edu/FAQ/FAQformat.html#format1
package bed

import (
	"strconv"

	"github.com/exascience/monomap/utils"
)

// Symbols for the strand field of a Region.
var (
	// Strand forward.
	SF = utils.Intern("+")
	// Strand reverse.
	SR = utils.Intern("-")
)

// A Region is one interval annotation line in a BED9 file.
type Region struct {
	Chrom      utils.Symbol
	Start      int32
	End        int32
	Name       string
	Score      int
	Strand     utils.Symbol
	ThickStart int32
	ThickEnd   int32
	ItemRGB    string
}

// NewRegion allocates and initializes a new Region with the fixed
// display fields monomap emits: score 0, thickStart/thickEnd equal to
// start/end, and color 0,0,0.
func NewRegion(chrom utils.Symbol, start, end int32, name string, strand utils.Symbol) *Region {
	return &Region{
		Chrom:      chrom,
		Start:      start,
		End:        end,
		Name:       name,
		Score:      0,
		Strand:     strand,
		ThickStart: start,
		ThickEnd:   end,
		ItemRGB:    "0,0,0",
	}
}

// Format appends the tab-delimited BED9 representation of the region
// to the given byte slice, including the trailing newline.
func (region *Region) Format(out []byte) []byte {
	out = append(out, *region.Chrom...)
	out = append(out, '\t')
	out = strconv.AppendInt(out, int64(region.Start), 10)
	out = append(out, '\t')
	out = strconv.AppendInt(out, int64(region.End), 10)
	out = append(out, '\t')
	out = append(out, region.Name...)
	out = append(out, '\t')
	out = strconv.AppendInt(out, int64(region.Score), 10)
	out = append(out, '\t')
	out = append(out, *region.Strand...)
	out = append(out, '\t')
	out = strconv.AppendInt(out, int64(region.ThickStart), 10)
	out = append(out, '\t')
	out = strconv.AppendInt(out, int64(region.ThickEnd), 10)
	out = append(out, '\t')
	out = append(out, region.ItemRGB...)
	out = append(out, '\n')
	return out
}
