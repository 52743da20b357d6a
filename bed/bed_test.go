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
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/exascience/monomap/utils"
)

func TestFormat(t *testing.T) {
	region := NewRegion(utils.Intern("chr1"), 1050, 1400, "AAAA,CCCC", SF)
	line := string(region.Format(nil))
	if line != "chr1\t1050\t1400\tAAAA,CCCC\t0\t+\t1050\t1400\t0,0,0\n" {
		t.Error("Format failed: ", line)
	}
}

func TestParseRegion(t *testing.T) {
	region, err := ParseRegion("chr1\t1050\t1400\tAAAA,CCCC\t0\t-\t1050\t1400\t0,0,0")
	if err != nil {
		t.Fatal(err)
	}
	if *region.Chrom != "chr1" || region.Start != 1050 || region.End != 1400 {
		t.Error("ParseRegion coordinates failed")
	}
	if region.Name != "AAAA,CCCC" || region.Score != 0 || region.Strand != SR {
		t.Error("ParseRegion display fields failed")
	}
	if region.ThickStart != 1050 || region.ThickEnd != 1400 || region.ItemRGB != "0,0,0" {
		t.Error("ParseRegion thick fields failed")
	}
	if _, err := ParseRegion("chr1\t1050\t1400"); err == nil {
		t.Error("ParseRegion accepted a truncated line")
	}
	if _, err := ParseRegion("chr1\t1050\t1400\tAAAA\t0\t*\t1050\t1400\t0,0,0"); err == nil {
		t.Error("ParseRegion accepted an invalid strand")
	}
}

func TestParseBed(t *testing.T) {
	dir := t.TempDir()
	bedFile := filepath.Join(dir, "regions.bed")
	contents := "track name=monomers\n" +
		"# comment\n" +
		"chr1\t1050\t1400\tAAAA,CCCC\t0\t+\t1050\t1400\t0,0,0\n" +
		"chr3\t2000\t2042\tTTTT\t0\t-\t2000\t2042\t0,0,0\n"
	if err := ioutil.WriteFile(bedFile, []byte(contents), 0666); err != nil {
		t.Fatal(err)
	}
	regions := ParseBed(bedFile)
	if len(regions) != 2 {
		t.Fatal("ParseBed returned ", len(regions), " regions")
	}
	if *regions[0].Chrom != "chr1" || *regions[1].Chrom != "chr3" {
		t.Error("ParseBed order failed")
	}
	if regions[1].Strand != SR {
		t.Error("ParseBed strand failed")
	}
}
