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
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/exascience/monomap/paf"
	"github.com/exascience/monomap/trf"
)

const testPaf = "cons1\t500\t0\t450\t+\tchr1\t50000\t1000\t1450\t440\t450\t60\ttp:A:P\tcg:Z:450M\n" +
	"cons1\t500\t0\t450\t+\tchr2\t50000\t8000\t8450\t430\t450\t0\ttp:A:S\tcg:Z:450M\n" +
	"cons2\t300\t0\t300\t-\tchr3\t50000\t2000\t2300\t290\t300\t60\ttp:A:P\tcg:Z:300M\n" +
	"\n" +
	"malformed line without tabs\n" +
	"cons1\t500\t0\t450\t+\tchr4\t50000\t7000\t7445\t430\t450\t60\ttp:A:P\tcg:Z:200M5I245M\n"

const testMonomers = "# monomer table\n" +
	"cons1\t50\t220\t170\tAAAA\n" +
	"cons1\t200\t400\t340\tCCCC\n" +
	"cons1\t420\t480\t160\tGGGG\n" +
	"cons2\t0\t42\t42\tTTTT\n" +
	"not a monomer row\n"

// chr1: [50, 220) and [200, 400) merge into [1050, 1400).
// chr2: secondary record, skipped.
// chr3: reverse strand, [0, 42) projects to [2000, 2042).
// chr4: the insertion at query offset 200 shifts [200, 400) left by 5.
const testExpected = "chr1\t1050\t1400\tAAAA,CCCC\t0\t+\t1050\t1400\t0,0,0\n" +
	"chr3\t2000\t2042\tTTTT\t0\t-\t2000\t2042\t0,0,0\n" +
	"chr4\t7050\t7395\tAAAA,CCCC\t0\t+\t7050\t7395\t0,0,0\n"

func runTestPipeline(t *testing.T, dir, name string, runner *Runner, pafFile string) []byte {
	outFile := filepath.Join(dir, name)
	input := paf.Open(pafFile)
	defer input.Close()
	output := paf.Create(outFile)
	if err := runner.RunPipeline(input, output); err != nil {
		t.Fatal(err)
	}
	output.Close()
	result, err := ioutil.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestRunPipeline(t *testing.T) {
	dir := t.TempDir()
	pafFile := filepath.Join(dir, "alignments.paf")
	monomerFile := filepath.Join(dir, "monomers.tsv")
	if err := ioutil.WriteFile(pafFile, []byte(testPaf), 0666); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(monomerFile, []byte(testMonomers), 0666); err != nil {
		t.Fatal(err)
	}

	catalog, skipped := trf.ParseMonomers(monomerFile)
	if catalog.Len() != 4 || skipped != 1 {
		t.Fatal("ParseMonomers failed: ", catalog.Len(), skipped)
	}
	periods, err := NewPeriodSet([]int{170, 340, 42}, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	runner := &Runner{Catalog: catalog, Periods: periods, PrimaryOnly: true}

	result := runTestPipeline(t, dir, "out1.bed", runner, pafFile)
	if string(result) != testExpected {
		t.Errorf("RunPipeline output failed:\n%vwant:\n%v", string(result), testExpected)
	}

	// a second run over the same inputs is byte-identical
	again := runTestPipeline(t, dir, "out2.bed", runner, pafFile)
	if !bytes.Equal(result, again) {
		t.Error("RunPipeline output is not deterministic")
	}
}

func TestRunPipelineAllRecords(t *testing.T) {
	dir := t.TempDir()
	pafFile := filepath.Join(dir, "alignments.paf")
	monomerFile := filepath.Join(dir, "monomers.tsv")
	if err := ioutil.WriteFile(pafFile, []byte(testPaf), 0666); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(monomerFile, []byte(testMonomers), 0666); err != nil {
		t.Fatal(err)
	}

	catalog, _ := trf.ParseMonomers(monomerFile)
	periods, err := NewPeriodSet([]int{170, 340, 42}, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	// without the primary filter the secondary record is annotated too
	runner := &Runner{Catalog: catalog, Periods: periods, PrimaryOnly: false}
	result := runTestPipeline(t, dir, "out.bed", runner, pafFile)
	expected := "chr1\t1050\t1400\tAAAA,CCCC\t0\t+\t1050\t1400\t0,0,0\n" +
		"chr2\t8050\t8400\tAAAA,CCCC\t0\t+\t8050\t8400\t0,0,0\n" +
		"chr3\t2000\t2042\tTTTT\t0\t-\t2000\t2042\t0,0,0\n" +
		"chr4\t7050\t7395\tAAAA,CCCC\t0\t+\t7050\t7395\t0,0,0\n"
	if string(result) != expected {
		t.Errorf("RunPipeline output failed:\n%vwant:\n%v", string(result), expected)
	}
}
