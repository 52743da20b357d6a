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

// monomap reconciles the output of a satellite-repeat finder with the
// output of a tandem-repeat finder. It projects the monomers that the
// tandem-repeat finder discovered on a repeat consensus through the
// consensus-to-assembly alignments of the satellite-repeat finder, and
// reports the assembly regions that carry monomers of the requested
// periodicities as BED9 intervals.
//
// Please see https://github.com/exascience/monomap for a documentation
// of the tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/exascience/monomap/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: annotate")
	fmt.Fprint(os.Stderr, "\n", cmd.AnnotateHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage, "\n")
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "annotate":
		err = cmd.Annotate()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Printf("Unknown command %v.\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
