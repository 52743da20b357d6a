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
	"github.com/exascience/monomap/intervals"
	"github.com/exascience/monomap/paf"
	"github.com/exascience/monomap/trf"
)

// Project maps a monomer's consensus interval through the coordinate
// mapping of one alignment record into target coordinates. Monomers
// whose interval extends beyond the mapped query window are dropped
// without projection, as are monomers whose projection collapses to
// zero width; both are expected occurrences, not errors.
func Project(mapping *paf.Mapping, monomer *trf.Monomer) (intervals.Interval, bool) {
	if monomer.Start < mapping.QueryStart() || monomer.End > mapping.QueryEnd() {
		return intervals.Interval{}, false
	}
	start, ok := mapping.TargetPos(monomer.Start)
	if !ok {
		return intervals.Interval{}, false
	}
	end, ok := mapping.TargetPos(monomer.End)
	if !ok || end <= start {
		return intervals.Interval{}, false
	}
	return intervals.Interval{Start: start, End: end}, true
}
