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
	"log"
	"sync/atomic"

	"github.com/exascience/pargo/pipeline"

	"github.com/exascience/monomap/bed"
	"github.com/exascience/monomap/paf"
	"github.com/exascience/monomap/trf"
	"github.com/exascience/monomap/utils"
)

// A Runner annotates a stream of PAF alignment records against a
// monomer catalog. The catalog and period set are read-only and
// shared by all worker goroutines; the counters are updated
// atomically.
type Runner struct {
	Catalog     Catalog
	Periods     *PeriodSet
	PrimaryOnly bool

	records   int64
	skipped   int64
	secondary int64
	emitted   int64
}

// Catalog is the read-only monomer lookup the Runner needs. It is
// implemented by *trf.Catalog.
type Catalog interface {
	Find(name utils.Symbol, start, end int32) []*trf.Monomer
}

// annotateRecord processes one alignment record: parse, alignment
// type filter, coordinate mapping, catalog lookup, periodicity
// filter, projection, and per-record merge. It returns nil when the
// record is skipped or retains no monomers.
func (runner *Runner) annotateRecord(line string) *bed.Region {
	atomic.AddInt64(&runner.records, 1)
	rec, err := paf.ParseRecord(line)
	if err != nil {
		log.Printf("skipping PAF record: %v", err)
		atomic.AddInt64(&runner.skipped, 1)
		return nil
	}
	if runner.PrimaryOnly {
		if tp, found := rec.AlignmentType(); found && tp != 'P' {
			atomic.AddInt64(&runner.secondary, 1)
			return nil
		}
	}
	mapping, err := paf.NewMapping(rec)
	if err != nil {
		log.Printf("skipping PAF record for %v: %v", rec.QName, err)
		atomic.AddInt64(&runner.skipped, 1)
		return nil
	}
	monomers := runner.Catalog.Find(utils.Intern(rec.QName), rec.QStart, rec.QEnd)
	group := Resolve(rec, mapping, monomers, runner.Periods)
	if group == nil {
		return nil
	}
	atomic.AddInt64(&runner.emitted, 1)
	return group.Region()
}

// annotateBatch turns a batch of raw PAF lines into a batch of
// formatted BED9 lines.
func (runner *Runner) annotateBatch(_ int, data interface{}) interface{} {
	lines := data.([]string)
	records := make([][]byte, 0, len(lines))
	for _, line := range lines {
		if region := runner.annotateRecord(line); region != nil {
			records = append(records, region.Format(nil))
		}
	}
	return records
}

// RunPipeline streams the alignment records of the PAF input file,
// annotates them in parallel, and writes the retained groups to the
// output file. Emission order follows input record order.
func (runner *Runner) RunPipeline(input *paf.InputFile, output *paf.OutputFile) error {
	var p pipeline.Pipeline
	p.Source(input)
	p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(runner.annotateBatch)),
		pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
			for _, line := range data.([][]byte) {
				if _, err := output.Write(line); err != nil {
					p.SetErr(err)
				}
			}
			return data
		})),
	)
	p.Run()
	return p.Err()
}

// LogSummary logs the record counters of a finished run.
func (runner *Runner) LogSummary() {
	log.Printf(
		"Processed %v PAF records: %v skipped, %v non-primary, %v annotated regions emitted.",
		atomic.LoadInt64(&runner.records),
		atomic.LoadInt64(&runner.skipped),
		atomic.LoadInt64(&runner.secondary),
		atomic.LoadInt64(&runner.emitted),
	)
}
