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

// Package trf parses the monomer tables produced by tandem-repeat
// finders and indexes the monomers per repeat consensus for interval
// lookups.
package trf

import (
	"bufio"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/biogo/store/interval"

	"github.com/exascience/monomap/internal"
	"github.com/exascience/monomap/intervals"
	"github.com/exascience/monomap/utils"
)

// A Monomer is one periodic sub-repeat discovered within a repeat
// consensus by a tandem-repeat finder. Start and End are half-open
// consensus coordinates.
type Monomer struct {
	id       uintptr
	Name     utils.Symbol
	Start    int32
	End      int32
	Period   int32
	CopyNum  float64
	Sequence string
}

// Overlap implements the method of the interval.IntInterface.
func (m *Monomer) Overlap(b interval.IntRange) bool {
	return int(m.End) > b.Start && int(m.Start) < b.End
}

// ID implements the method of the interval.IntInterface. The ID
// reflects table order and breaks ties between monomers with equal
// start offsets.
func (m *Monomer) ID() uintptr { return m.id }

// Range implements the method of the interval.IntInterface.
func (m *Monomer) Range() interval.IntRange {
	return interval.IntRange{Start: int(m.Start), End: int(m.End)}
}

// window is an interval query over one consensus.
type window struct {
	start, end int32
}

func (w window) Overlap(b interval.IntRange) bool {
	return int(w.end) > b.Start && int(w.start) < b.End
}
func (w window) ID() uintptr { return 0 }
func (w window) Range() interval.IntRange {
	return interval.IntRange{Start: int(w.start), End: int(w.end)}
}

// A Catalog indexes monomers by the repeat consensus they were
// discovered on. A Catalog is built once up front and is safe for
// concurrent lookups afterwards.
type Catalog struct {
	trees map[utils.Symbol]*interval.IntTree
	size  int
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{trees: make(map[utils.Symbol]*interval.IntTree)}
}

// Len returns the number of monomers in the catalog.
func (catalog *Catalog) Len() int { return catalog.size }

// Add inserts a monomer into the catalog. AdjustRanges must be called
// after the last insertion and before the first lookup.
func (catalog *Catalog) Add(monomer *Monomer) {
	tree, found := catalog.trees[monomer.Name]
	if !found {
		tree = &interval.IntTree{}
		catalog.trees[monomer.Name] = tree
	}
	if err := tree.Insert(monomer, true); err != nil {
		log.Panic(err)
	}
	catalog.size++
}

// AdjustRanges fixes up the interval trees after fast insertions.
func (catalog *Catalog) AdjustRanges() {
	for _, tree := range catalog.trees {
		tree.AdjustRanges()
	}
}

// Find returns the monomers on the named consensus whose intervals
// overlap the half-open window [start, end), sorted by start offset
// with ties in table order. Consensus names absent from the catalog
// yield an empty result, not an error.
func (catalog *Catalog) Find(name utils.Symbol, start, end int32) []*Monomer {
	tree, found := catalog.trees[name]
	if !found {
		return nil
	}
	var result []*Monomer
	tree.DoMatching(func(hit interval.IntInterface) bool {
		result = append(result, hit.(*Monomer))
		return false
	}, window{start, end})
	sort.Slice(result, func(i, j int) bool {
		if result[i].Start != result[j].Start {
			return result[i].Start < result[j].Start
		}
		return result[i].id < result[j].id
	})
	return result
}

// Coverage returns the number of indexed consensus sequences and the
// total number of consensus bases covered by at least one monomer.
func (catalog *Catalog) Coverage() (consensuses int, bases int64) {
	for _, tree := range catalog.trees {
		consensuses++
		covered := make([]intervals.Interval, 0, tree.Len())
		tree.Do(func(hit interval.IntInterface) bool {
			r := hit.Range()
			covered = append(covered, intervals.Interval{Start: int32(r.Start), End: int32(r.End)})
			return false
		})
		intervals.ParallelSortByStart(covered)
		for _, iv := range intervals.ParallelFlatten(covered) {
			bases += int64(iv.End - iv.Start)
		}
	}
	return consensuses, bases
}

// The two accepted monomer table layouts: the minimal five-column
// layout (name, start, end, period, sequence, with period possibly .
// to derive it from end-start), and the ten-column layout of trf on
// srf consensus sequences (motif, start, end, period, copyNum,
// fracMatch, fracGap, score, entropy, pattern).
const (
	minimalColumns = 5
	trfColumns     = 10
)

// ParseMonomerRow parses one tab-delimited monomer table row. The id
// records table order for deterministic tie-breaks.
func ParseMonomerRow(line string, id uintptr) (*Monomer, error) {
	fields := strings.Split(line, "\t")
	monomer := &Monomer{id: id}
	var period, copyNum string
	switch len(fields) {
	case minimalColumns:
		period = fields[3]
		monomer.Sequence = fields[4]
	case trfColumns:
		period = fields[3]
		copyNum = fields[4]
		monomer.Sequence = fields[9]
	default:
		return nil, fmt.Errorf("invalid number of columns %v in monomer table row", len(fields))
	}
	monomer.Name = utils.Intern(fields[0])
	start, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return nil, err
	}
	end, err := strconv.ParseInt(fields[2], 10, 32)
	if err != nil {
		return nil, err
	}
	monomer.Start = int32(start)
	monomer.End = int32(end)
	if monomer.Start < 0 || monomer.Start >= monomer.End {
		return nil, fmt.Errorf("invalid monomer interval [%v, %v)", monomer.Start, monomer.End)
	}
	if period == "." {
		monomer.Period = monomer.End - monomer.Start
	} else {
		p, err := strconv.ParseInt(period, 10, 32)
		if err != nil {
			return nil, err
		}
		monomer.Period = int32(p)
	}
	if monomer.Period <= 0 {
		return nil, fmt.Errorf("invalid monomer period %v", monomer.Period)
	}
	if copyNum != "" {
		c, err := strconv.ParseFloat(copyNum, 64)
		if err != nil {
			return nil, err
		}
		monomer.CopyNum = c
	}
	if monomer.Sequence == "" {
		return nil, fmt.Errorf("empty monomer sequence for row [%v, %v)", monomer.Start, monomer.End)
	}
	return monomer, nil
}

// ParseMonomers loads a monomer table into a Catalog. Malformed rows
// are logged, counted, and skipped; the table as a whole only fails
// when the file cannot be read. The returned catalog is ready for
// lookups.
func ParseMonomers(filename string) (catalog *Catalog, skipped int) {
	file := internal.FileOpen(filename)
	defer internal.Close(file)

	catalog = NewCatalog()
	scanner := bufio.NewScanner(utils.HandleGzip(bufio.NewReader(file)))
	var id uintptr
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id++
		monomer, err := ParseMonomerRow(line, id)
		if err != nil {
			log.Printf("skipping monomer table row %v: %v", id, err)
			skipped++
			continue
		}
		catalog.Add(monomer)
	}
	if err := scanner.Err(); err != nil {
		log.Panic(err)
	}
	catalog.AdjustRanges()
	return catalog, skipped
}
