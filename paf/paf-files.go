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

package paf

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"

	"github.com/exascience/monomap/internal"
	"github.com/exascience/monomap/utils"
)

// The maximum line length an InputFile accepts. CIGAR strings of
// chromosome-scale alignments can run into tens of megabytes.
const maxLineSize = 0x10000000

type (
	// InputFile represents a PAF file for input. It implements the
	// pargo pipeline.Source interface, producing batches of raw
	// record lines.
	InputFile struct {
		rc      io.ReadCloser
		scanner *bufio.Scanner
		err     error
		data    []string
	}

	// OutputFile represents an annotation file for output.
	OutputFile struct {
		wc io.WriteCloser
		*bufio.Writer
	}
)

// Open opens a PAF file for input. Gzip and bgzip compressed files
// are handled transparently. Open panics if the file cannot be
// opened.
func Open(name string) *InputFile {
	var rc io.ReadCloser
	if name == "/dev/stdin" {
		rc = os.Stdin
	} else {
		rc = internal.FileOpen(name)
	}
	scanner := bufio.NewScanner(utils.HandleGzip(bufio.NewReader(rc)))
	scanner.Buffer(nil, maxLineSize)
	return &InputFile{rc: rc, scanner: scanner}
}

// Close closes the PAF input file.
func (f *InputFile) Close() {
	if f.rc != os.Stdin {
		internal.Close(f.rc)
	}
}

// Err implements the method of the pipeline.Source interface.
func (f *InputFile) Err() error {
	return f.err
}

// Prepare implements the method of the pipeline.Source interface.
func (f *InputFile) Prepare(_ context.Context) int {
	return -1
}

// Fetch implements the method of the pipeline.Source interface.
// It fetches up to size record lines, skipping empty lines.
func (f *InputFile) Fetch(size int) int {
	data := make([]string, 0, size)
	for len(data) < size && f.scanner.Scan() {
		if line := f.scanner.Text(); line != "" {
			data = append(data, line)
		}
	}
	f.err = f.scanner.Err()
	f.data = data
	return len(data)
}

// Data implements the method of the pipeline.Source interface.
func (f *InputFile) Data() interface{} {
	return f.data
}

// Create creates an annotation file for output. The name /dev/stdout
// writes to standard output.
func Create(name string) *OutputFile {
	var wc io.WriteCloser
	if name == "/dev/stdout" {
		wc = os.Stdout
	} else {
		wc = internal.FileCreate(name)
	}
	return &OutputFile{wc: wc, Writer: bufio.NewWriter(wc)}
}

// Close flushes and closes the output file.
func (f *OutputFile) Close() {
	if err := f.Flush(); err != nil {
		log.Panic(err)
	}
	if f.wc != os.Stdout {
		internal.Close(f.wc)
	}
}
