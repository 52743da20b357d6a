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

package annotate

import (
	"strings"

	"github.com/exascience/monomap/bed"
	"github.com/exascience/monomap/intervals"
	"github.com/exascience/monomap/paf"
	"github.com/exascience/monomap/trf"
	"github.com/exascience/monomap/utils"
)

// A MonomerGroup merges the retained monomers of one alignment record
// into a single target interval. Groups are never merged across
// alignment records, also when records overlap on the target; each
// record is resolved and emitted independently.
type MonomerGroup struct {
	TName     string
	Interval  intervals.Interval
	Strand    byte
	Sequences []string
}

func (group *MonomerGroup) add(iv intervals.Interval, sequence string) {
	if iv.Start < group.Interval.Start {
		group.Interval.Start = iv.Start
	}
	if iv.End > group.Interval.End {
		group.Interval.End = iv.End
	}
	group.Sequences = append(group.Sequences, sequence)
}

// Resolve applies the periodicity filter to the monomers of one
// alignment record, projects the survivors into target coordinates,
// and merges them into at most one group. The monomers must be sorted
// by consensus start offset; their sequences are collected in that
// order. Resolve returns nil when no monomer is retained.
func Resolve(rec *paf.Record, mapping *paf.Mapping, monomers []*trf.Monomer, periods *PeriodSet) *MonomerGroup {
	var group *MonomerGroup
	for _, monomer := range monomers {
		if !periods.Matches(monomer.Period) {
			continue
		}
		iv, ok := Project(mapping, monomer)
		if !ok {
			continue
		}
		if group == nil {
			group = &MonomerGroup{
				TName:     rec.TName,
				Interval:  iv,
				Strand:    rec.Strand,
				Sequences: []string{monomer.Sequence},
			}
		} else {
			group.add(iv, monomer.Sequence)
		}
	}
	return group
}

// Region converts the group into its BED9 output record.
func (group *MonomerGroup) Region() *bed.Region {
	strand := bed.SF
	if group.Strand == '-' {
		strand = bed.SR
	}
	return bed.NewRegion(
		utils.Intern(group.TName),
		group.Interval.Start,
		group.Interval.End,
		strings.Join(group.Sequences, ","),
		strand,
	)
}
