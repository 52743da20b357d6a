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
	"testing"

	"github.com/exascience/monomap/paf"
	"github.com/exascience/monomap/trf"
	"github.com/exascience/monomap/utils"
)

func newTestMapping(t *testing.T, qstart, qend, tstart, tend int32, cigar string) (*paf.Record, *paf.Mapping) {
	rec := &paf.Record{
		QName: "cons1", QLength: 1000, QStart: qstart, QEnd: qend,
		Strand: '+',
		TName:  "chr1", TLength: 100000, TStart: tstart, TEnd: tend,
	}
	rec.Tags.Set(paf.CG, cigar)
	mapping, err := paf.NewMapping(rec)
	if err != nil {
		t.Fatal(err)
	}
	return rec, mapping
}

func newTestMonomer(start, end, period int32, sequence string) *trf.Monomer {
	return &trf.Monomer{
		Name:     utils.Intern("cons1"),
		Start:    start,
		End:      end,
		Period:   period,
		Sequence: sequence,
	}
}

func TestProject(t *testing.T) {
	_, mapping := newTestMapping(t, 0, 400, 1000, 1400, "400M")
	iv, ok := Project(mapping, newTestMonomer(50, 220, 170, "AAAA"))
	if !ok || iv.Start != 1050 || iv.End != 1220 {
		t.Error("Project failed: ", iv)
	}
	// monomers extending beyond the mapped window are dropped
	if _, ok := Project(mapping, newTestMonomer(300, 450, 170, "AAAA")); ok {
		t.Error("Project retained a monomer past the mapped window")
	}
}

func TestProjectZeroWidth(t *testing.T) {
	// a monomer inside an insertion projects to zero width
	_, mapping := newTestMapping(t, 0, 25, 100, 120, "10M5I10M")
	if _, ok := Project(mapping, newTestMonomer(10, 15, 42, "AAAA")); ok {
		t.Error("Project retained a zero-width projection")
	}
}

func TestResolve(t *testing.T) {
	rec, mapping := newTestMapping(t, 0, 450, 1000, 1450, "450M")
	periods, err := NewPeriodSet([]int{170, 340, 42}, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	monomers := []*trf.Monomer{
		newTestMonomer(50, 220, 170, "AAAA"),
		newTestMonomer(200, 400, 340, "CCCC"),
		newTestMonomer(400, 440, 160, "GGGG"), // period matches nothing
	}
	group := Resolve(rec, mapping, monomers, periods)
	if group == nil {
		t.Fatal("Resolve returned no group")
	}
	// overlapping projections merge into one interval per record
	if group.TName != "chr1" || group.Interval.Start != 1050 || group.Interval.End != 1400 {
		t.Error("Resolve merged interval failed: ", group.Interval)
	}
	if len(group.Sequences) != 2 || group.Sequences[0] != "AAAA" || group.Sequences[1] != "CCCC" {
		t.Error("Resolve sequence order failed: ", group.Sequences)
	}

	region := group.Region()
	if *region.Chrom != "chr1" || region.Start != 1050 || region.End != 1400 {
		t.Error("Region coordinates failed")
	}
	if region.Name != "AAAA,CCCC" || region.Score != 0 || *region.Strand != "+" {
		t.Error("Region display fields failed")
	}
	if region.ThickStart != 1050 || region.ThickEnd != 1400 || region.ItemRGB != "0,0,0" {
		t.Error("Region thick fields failed")
	}
}

func TestResolveNothingRetained(t *testing.T) {
	rec, mapping := newTestMapping(t, 0, 450, 1000, 1450, "450M")
	periods, err := NewPeriodSet([]int{170}, 0)
	if err != nil {
		t.Fatal(err)
	}
	monomers := []*trf.Monomer{newTestMonomer(0, 200, 200, "AAAA")}
	if group := Resolve(rec, mapping, monomers, periods); group != nil {
		t.Error("Resolve invented a group")
	}
	if group := Resolve(rec, mapping, nil, periods); group != nil {
		t.Error("Resolve invented a group for no monomers")
	}
}

func TestResolveReverseStrand(t *testing.T) {
	rec, mapping := newTestMapping(t, 0, 450, 1000, 1450, "450M")
	rec.Strand = '-'
	periods, err := NewPeriodSet([]int{170}, 0)
	if err != nil {
		t.Fatal(err)
	}
	monomers := []*trf.Monomer{newTestMonomer(50, 220, 170, "AAAA")}
	group := Resolve(rec, mapping, monomers, periods)
	if group == nil {
		t.Fatal("Resolve returned no group")
	}
	region := group.Region()
	// coordinates stay forward-strand, only the strand column flips
	if region.Start != 1050 || region.End != 1220 || *region.Strand != "-" {
		t.Error("reverse strand region failed")
	}
}
