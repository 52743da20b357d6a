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

package trf

import (
	"testing"

	"github.com/exascience/monomap/utils"
)

func TestParseMonomerRowMinimal(t *testing.T) {
	monomer, err := ParseMonomerRow("cons1\t50\t220\t170\tACGT", 1)
	if err != nil {
		t.Fatal(err)
	}
	if monomer.Name != utils.Intern("cons1") || monomer.Start != 50 || monomer.End != 220 {
		t.Error("ParseMonomerRow coordinates failed")
	}
	if monomer.Period != 170 || monomer.Sequence != "ACGT" {
		t.Error("ParseMonomerRow period or sequence failed")
	}
}

func TestParseMonomerRowDerivedPeriod(t *testing.T) {
	monomer, err := ParseMonomerRow("cons1\t50\t220\t.\tACGT", 1)
	if err != nil {
		t.Fatal(err)
	}
	// a . period is derived from the interval span
	if monomer.Period != 170 {
		t.Error("ParseMonomerRow derived period failed: ", monomer.Period)
	}
}

func TestParseMonomerRowTrfLayout(t *testing.T) {
	monomer, err := ParseMonomerRow("cons1\t100\t440\t340\t2.1\t95.2\t0.5\t680\t1.92\tACGTACGT", 1)
	if err != nil {
		t.Fatal(err)
	}
	if monomer.Period != 340 || monomer.CopyNum != 2.1 || monomer.Sequence != "ACGTACGT" {
		t.Error("ParseMonomerRow trf layout failed")
	}
}

func TestParseMonomerRowMalformed(t *testing.T) {
	for _, row := range []string{
		"cons1\t50\t220\t170",                  // too few columns
		"cons1\t50\t220\t170\tACGT\textra",     // six columns fits neither layout
		"cons1\tfifty\t220\t170\tACGT",         // non-numeric start
		"cons1\t220\t50\t170\tACGT",            // inverted interval
		"cons1\t-1\t220\t170\tACGT",            // negative start
		"cons1\t50\t220\t0\tACGT",              // non-positive period
		"cons1\t50\t220\t170\t",                // empty sequence
		"cons1\t100\t440\t340\tx\t95.2\t0.5\t680\t1.92\tACGT", // non-numeric copy number
	} {
		if _, err := ParseMonomerRow(row, 1); err == nil {
			t.Errorf("ParseMonomerRow accepted malformed row %v", row)
		}
	}
}

func newTestCatalog(t *testing.T, rows []string) *Catalog {
	catalog := NewCatalog()
	for i, row := range rows {
		monomer, err := ParseMonomerRow(row, uintptr(i+1))
		if err != nil {
			t.Fatal(err)
		}
		catalog.Add(monomer)
	}
	catalog.AdjustRanges()
	return catalog
}

func TestCatalogFind(t *testing.T) {
	catalog := newTestCatalog(t, []string{
		"cons1\t200\t400\t340\tCCCC",
		"cons1\t50\t220\t170\tAAAA",
		"cons1\t600\t770\t170\tGGGG",
		"cons2\t0\t42\t42\tTTTT",
	})
	if catalog.Len() != 4 {
		t.Error("Catalog.Len failed")
	}

	monomers := catalog.Find(utils.Intern("cons1"), 0, 500)
	if len(monomers) != 2 {
		t.Fatal("Catalog.Find returned ", len(monomers), " monomers")
	}
	// results come back sorted by start offset
	if monomers[0].Sequence != "AAAA" || monomers[1].Sequence != "CCCC" {
		t.Error("Catalog.Find order failed")
	}

	// lookup windows are half-open
	if monomers := catalog.Find(utils.Intern("cons1"), 400, 600); len(monomers) != 0 {
		t.Error("Catalog.Find matched adjacent monomers")
	}
	if monomers := catalog.Find(utils.Intern("cons3"), 0, 1000); len(monomers) != 0 {
		t.Error("Catalog.Find invented monomers for an unknown consensus")
	}
}

func TestCatalogFindTies(t *testing.T) {
	catalog := newTestCatalog(t, []string{
		"cons1\t50\t220\t170\tAAAA",
		"cons1\t50\t90\t42\tCCCC",
	})
	monomers := catalog.Find(utils.Intern("cons1"), 0, 500)
	if len(monomers) != 2 {
		t.Fatal("Catalog.Find returned ", len(monomers), " monomers")
	}
	// equal start offsets fall back to table order
	if monomers[0].Sequence != "AAAA" || monomers[1].Sequence != "CCCC" {
		t.Error("Catalog.Find tie order failed")
	}
}

func TestCatalogCoverage(t *testing.T) {
	catalog := newTestCatalog(t, []string{
		"cons1\t50\t220\t170\tAAAA",
		"cons1\t200\t400\t340\tCCCC",
		"cons1\t600\t770\t170\tGGGG",
		"cons2\t0\t42\t42\tTTTT",
	})
	consensuses, bases := catalog.Coverage()
	if consensuses != 2 {
		t.Error("Catalog.Coverage consensuses failed: ", consensuses)
	}
	// [50, 220) and [200, 400) overlap and flatten to [50, 400)
	if bases != 350+170+42 {
		t.Error("Catalog.Coverage bases failed: ", bases)
	}
}
