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
	"fmt"
)

/*
A scanner to scan/parse ASCII strings representing lines in PAF files.

The zero StringScanner is valid and empty.
*/
type StringScanner struct {
	index int
	data  string
	err   error
}

/*
Returns the error that occurred during scanning/parsing.
*/
func (sc *StringScanner) Err() error {
	return sc.err
}

/*
Resets the scanner, and initializes it with the given string.
*/
func (sc *StringScanner) Reset(s string) {
	sc.index = 0
	sc.data = s
	sc.err = nil
}

/*
Returns the number of ASCII characters that still need to be
scanned/parsed. Returns 0 if Err() would return a non-nil value.
*/
func (sc *StringScanner) Len() int {
	if sc.err != nil {
		return 0
	}
	return len(sc.data) - sc.index
}

func (sc *StringScanner) readByteUntil(c byte) (b byte, found bool) {
	if sc.err != nil {
		return 0, false
	}
	start := sc.index
	if start >= len(sc.data) {
		return 0, false
	}
	next := start + 1
	if next >= len(sc.data) {
		sc.index = len(sc.data)
		return sc.data[start], false
	} else if sc.data[next] != c {
		if sc.err == nil {
			sc.err = fmt.Errorf("unexpected character %v in StringScanner.readByteUntil", sc.data[next])
		}
		return 0, false
	} else {
		sc.index = next + 1
		return sc.data[start], true
	}
}

func (sc *StringScanner) readUntil(c byte) (s string, found bool) {
	if sc.err != nil {
		return "", false
	}
	start := sc.index
	for end := sc.index; end < len(sc.data); end++ {
		if sc.data[end] == c {
			sc.index = end + 1
			return sc.data[start:end], true
		}
	}
	sc.index = len(sc.data)
	return sc.data[start:], false
}
