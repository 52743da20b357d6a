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

package utils

import (
	"bufio"
	"compress/gzip"
	"io"
	"log"
)

// IsGzip checks whether the given reader produces a gzip stream by
// looking at the initial byte. IsGzip uses ReadByte and UnreadByte.
func IsGzip(buf *bufio.Reader) (bool, error) {
	b, err := buf.ReadByte()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := buf.UnreadByte(); err != nil {
		return false, err
	}
	return b == 0x1f, nil
}

// HandleGzip checks if the given reader produces a gzip file
// by looking at the initial byte. It then either returns a
// gzip.Reader, or returns the given reader unchanged. bgzip'ed
// inputs are covered as well, since BGZF is a valid multi-member
// gzip stream. HandleGzip uses ReadByte and UnreadByte.
func HandleGzip(buf *bufio.Reader) io.Reader {
	if ok, err := IsGzip(buf); err != nil {
		log.Panic(err)
		return nil
	} else if ok {
		if r, err := gzip.NewReader(buf); err != nil {
			log.Panic(err)
			return nil
		} else {
			return r
		}
	} else {
		return buf
	}
}
