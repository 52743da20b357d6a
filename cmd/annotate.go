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

package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/exascience/monomap/annotate"
	"github.com/exascience/monomap/paf"
	"github.com/exascience/monomap/trf"
)

// AnnotateHelp is the help string for the annotate command.
const AnnotateHelp = "annotate parameters:\n" +
	"monomap annotate\n" +
	"--paf file\n" +
	"--monomers file\n" +
	"[--output file]\n" +
	"[--periods p1,p2,...]\n" +
	"[--tolerance fraction]\n" +
	"[--primary-only bool]\n" +
	"[--nr-of-threads number]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

func parsePeriods(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var periods []int
	for _, field := range strings.Split(s, ",") {
		period, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid monomer period %v", field)
		}
		periods = append(periods, period)
	}
	return periods, nil
}

// Annotate implements the monomap annotate command.
func Annotate() error {
	var (
		pafFile, monomerFile, outputFile string
		periodsString                    string
		tolerance                        float64
		primaryOnly                      bool
		nrOfThreads                      int
		timed                            bool
		profile, logPath                 string
	)

	var flags flag.FlagSet
	flags.StringVar(&pafFile, "paf", "", "PAF file of the repeat consensus sequences aligned onto the assembly, with cg:Z: CIGAR tags")
	flags.StringVar(&monomerFile, "monomers", "", "monomer table of the tandem-repeat finder on the consensus sequences")
	flags.StringVar(&outputFile, "output", "", "BED9 output file (default: standard output)")
	flags.StringVar(&periodsString, "periods", "170,340,42", "comma-separated monomer periods in base pairs to annotate")
	flags.Float64Var(&tolerance, "tolerance", 0.02, "allowed fractional deviation from a requested period")
	flags.BoolVar(&primaryOnly, "primary-only", true, "only annotate primary alignment records")
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(flags, 2, AnnotateHelp)

	setLogOutput(logPath)

	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
	}

	// sanity checks

	sanityChecksFailed := false
	if !checkExist("--paf", pafFile) {
		sanityChecksFailed = true
	}
	if !checkExist("--monomers", monomerFile) {
		sanityChecksFailed = true
	}
	if outputFile != "" && !checkCreate("--output", outputFile) {
		sanityChecksFailed = true
	}

	var periodSet *annotate.PeriodSet
	periods, err := parsePeriods(periodsString)
	if err == nil {
		periodSet, err = annotate.NewPeriodSet(periods, tolerance)
	}
	if err != nil {
		log.Printf("Error: %v.\n", err)
		sanityChecksFailed = true
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, AnnotateHelp)
		os.Exit(1)
	}

	// building the catalog before the streaming phase ensures no
	// partial output is written when the monomer table is unreadable

	catalog, skippedRows := trf.ParseMonomers(monomerFile)
	consensuses, bases := catalog.Coverage()
	log.Printf(
		"Loaded %v monomers on %v consensus sequences covering %v bases (%v malformed rows skipped).",
		catalog.Len(), consensuses, bases, skippedRows,
	)
	log.Println("Annotating monomer periods", periodSet)

	if outputFile == "" {
		outputFile = "/dev/stdout"
	}

	runner := &annotate.Runner{
		Catalog:     catalog,
		Periods:     periodSet,
		PrimaryOnly: primaryOnly,
	}

	var runErr error
	timedRun(timed, profile, "Annotating PAF records.", 1, func() {
		input := paf.Open(pafFile)
		defer input.Close()
		output := paf.Create(outputFile)
		defer output.Close()
		runErr = runner.RunPipeline(input, output)
	})
	if runErr != nil {
		return runErr
	}
	runner.LogSummary()
	return nil
}
