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

package bed

import (
	"bufio"
	"fmt"
	"log"
	"strings"

	"github.com/exascience/monomap/internal"
	"github.com/exascience/monomap/utils"
)

// ParseRegion parses one BED9 line.
func ParseRegion(line string) (*Region, error) {
	data := strings.Split(line, "\t")
	if len(data) != 9 {
		return nil, fmt.Errorf("invalid number of columns %v in BED9 line", len(data))
	}
	if data[5] != "+" && data[5] != "-" {
		return nil, fmt.Errorf("invalid strand field %v in BED9 line", data[5])
	}
	return &Region{
		Chrom:      utils.Intern(data[0]),
		Start:      int32(internal.ParseInt(data[1], 10, 32)),
		End:        int32(internal.ParseInt(data[2], 10, 32)),
		Name:       data[3],
		Score:      int(internal.ParseInt(data[4], 10, 32)),
		Strand:     utils.Intern(data[5]),
		ThickStart: int32(internal.ParseInt(data[6], 10, 32)),
		ThickEnd:   int32(internal.ParseInt(data[7], 10, 32)),
		ItemRGB:    data[8],
	}, nil
}

// ParseBed parses a BED9 file. Track definition and comment lines are
// skipped.
func ParseBed(filename string) (regions []*Region) {
	file := internal.FileOpen(filename)
	defer internal.Close(file)

	scanner := bufio.NewScanner(utils.HandleGzip(bufio.NewReader(file)))

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" ||
			strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") ||
			strings.HasPrefix(line, "browser") {
			continue
		}
		region, err := ParseRegion(line)
		if err != nil {
			log.Panic(err)
		}
		regions = append(regions, region)
	}
	if err := scanner.Err(); err != nil {
		log.Panic(err)
	}
	return regions
}
