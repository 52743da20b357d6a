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

// Package annotate implements the monomap annotation pipeline: it
// filters monomers by periodicity, projects them from consensus
// coordinates into assembly coordinates through PAF alignment
// records, and merges the projections per alignment record into BED9
// regions.
package annotate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/willf/bitset"

	"github.com/exascience/monomap/intervals"
)

// ErrNoPeriods flags a configuration without monomer periods.
var ErrNoPeriods = errors.New("no monomer periods provided")

// Slack applied to the acceptance bounds before truncation, so that a
// period whose relative deviation is exactly the tolerance is
// accepted despite floating-point rounding.
const boundarySlack = 1e-9

// A PeriodSet decides whether an observed monomer period matches one
// of the requested periodicities within a tolerance fraction. The
// acceptance test is |period - t| / t <= tolerance for any requested
// period t; the tolerance is applied against the requested period,
// never against the observed one.
type PeriodSet struct {
	periods   []int
	tolerance float64
	ranges    []intervals.Interval
	accepted  *bitset.BitSet
}

// NewPeriodSet precomputes the set of accepted integer periods for
// the given periodicities and tolerance fraction. An empty period
// set, a non-positive period, and a negative tolerance are
// configuration errors.
func NewPeriodSet(periods []int, tolerance float64) (*PeriodSet, error) {
	if len(periods) == 0 {
		return nil, ErrNoPeriods
	}
	if tolerance < 0 {
		return nil, fmt.Errorf("negative period tolerance %v", tolerance)
	}
	set := &PeriodSet{periods: periods, tolerance: tolerance}
	var max int
	for _, period := range periods {
		if period <= 0 {
			return nil, fmt.Errorf("invalid monomer period %v", period)
		}
		lo := int(math.Ceil(float64(period)*(1-tolerance) - boundarySlack))
		hi := int(math.Floor(float64(period)*(1+tolerance) + boundarySlack))
		if lo < 1 {
			lo = 1
		}
		set.ranges = append(set.ranges, intervals.Interval{Start: int32(lo), End: int32(hi + 1)})
		if hi > max {
			max = hi
		}
	}
	set.accepted = bitset.New(uint(max + 1))
	for _, r := range set.ranges {
		for p := r.Start; p < r.End; p++ {
			set.accepted.Set(uint(p))
		}
	}
	return set, nil
}

// Matches reports whether the observed period lies within the
// tolerance of any requested periodicity. Exact equality to a
// requested period always matches, including at tolerance 0.
func (set *PeriodSet) Matches(period int32) bool {
	return period > 0 && set.accepted.Test(uint(period))
}

// String renders the accepted period ranges for logging.
func (set *PeriodSet) String() string {
	var b strings.Builder
	for i, period := range set.periods {
		if i > 0 {
			b.WriteString(", ")
		}
		r := set.ranges[i]
		fmt.Fprintf(&b, "%v [%v-%v]", period, r.Start, r.End-1)
	}
	b.WriteString(" (tolerance ")
	b.WriteString(strconv.FormatFloat(set.tolerance, 'g', -1, 64))
	b.WriteString(")")
	return b.String()
}
