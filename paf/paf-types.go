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

// Package paf implements a parser for PAF pairwise alignment records,
// CIGAR scanning, and query-to-target coordinate mapping derived from
// CIGAR operations.
package paf

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/exascience/monomap/utils"
)

// A Record represents one PAF pairwise alignment record: a repeat
// consensus (the query) aligned onto a genome assembly sequence (the
// target). A Record is immutable once parsed.
type Record struct {
	QName           string
	QLength         int32
	QStart, QEnd    int32
	Strand          byte
	TName           string
	TLength         int32
	TStart, TEnd    int32
	Matches         int32
	AlignmentLength int32
	MappingQuality  byte
	Tags            utils.SmallMap
}

// Symbols for the optional PAF tags monomap cares about.
var (
	// CG is the tag of the base-level alignment CIGAR string.
	CG = utils.Intern("cg")
	// TP is the tag of the alignment type (P for primary, S for secondary).
	TP = utils.Intern("tp")
)

// Cigar returns the value of the cg:Z: tag, or false if the record
// does not carry one.
func (rec *Record) Cigar() (string, bool) {
	value, found := rec.Tags.Get(CG)
	if !found {
		return "", false
	}
	return value.(string), true
}

// AlignmentType returns the value of the tp:A: tag, or false if the
// record does not carry one.
func (rec *Record) AlignmentType() (byte, bool) {
	value, found := rec.Tags.Get(TP)
	if !found {
		return 0, false
	}
	return value.(byte), true
}

func (sc *StringScanner) doString() string {
	if sc.err != nil {
		return ""
	}
	value, ok := sc.readUntil('\t')
	if !ok {
		if sc.err == nil {
			sc.err = errors.New("missing tabulator in PAF record")
		}
		return ""
	}
	return value
}

func (sc *StringScanner) doInt32() int32 {
	if sc.err != nil {
		return 0
	}
	value, err := strconv.ParseInt(sc.doString(), 10, 32)
	if (err != nil) && (sc.err == nil) {
		sc.err = err
	}
	return int32(value)
}

func (sc *StringScanner) doStrand() byte {
	if sc.err != nil {
		return 0
	}
	value := sc.doString()
	if sc.err != nil {
		return 0
	}
	if value != "+" && value != "-" {
		sc.err = fmt.Errorf("invalid strand %v in PAF record", value)
		return 0
	}
	return value[0]
}

// FieldParser scans one optional field value of a known type.
type FieldParser func(*StringScanner) interface{}

// ParseChar parses an optional field of type A.
func (sc *StringScanner) ParseChar() interface{} {
	value, _ := sc.readUntil('\t')
	if len(value) != 1 {
		if sc.err == nil {
			sc.err = fmt.Errorf("invalid character field %v in PAF record", value)
		}
		return byte(0)
	}
	return value[0]
}

// ParseInteger parses an optional field of type i.
func (sc *StringScanner) ParseInteger() interface{} {
	value, _ := sc.readUntil('\t')
	result, err := strconv.ParseInt(value, 10, 64)
	if (err != nil) && (sc.err == nil) {
		sc.err = err
	}
	return result
}

// ParseFloat parses an optional field of type f.
func (sc *StringScanner) ParseFloat() interface{} {
	value, _ := sc.readUntil('\t')
	result, err := strconv.ParseFloat(value, 64)
	if (err != nil) && (sc.err == nil) {
		sc.err = err
	}
	return result
}

// ParseString parses an optional field of type Z.
func (sc *StringScanner) ParseString() interface{} {
	value, _ := sc.readUntil('\t')
	return value
}

var optionalFieldParseTable = map[byte]FieldParser{
	'A': (*StringScanner).ParseChar,
	'i': (*StringScanner).ParseInteger,
	'f': (*StringScanner).ParseFloat,
	'Z': (*StringScanner).ParseString,
}

// ParseOptionalField scans one tag:TYPE:value field of a PAF record.
func (sc *StringScanner) ParseOptionalField() (tag utils.Symbol, value interface{}) {
	if sc.err != nil {
		return nil, nil
	}
	tagname, ok := sc.readUntil(':')
	if !ok || (len(tagname) != 2) {
		if sc.err == nil {
			sc.err = fmt.Errorf("invalid field tag %v in PAF record", tagname)
		}
		return nil, nil
	}
	tag = utils.Intern(tagname)
	typebyte, ok := sc.readByteUntil(':')
	if !ok {
		if sc.err == nil {
			sc.err = fmt.Errorf("invalid field type %v in PAF record", typebyte)
		}
		return nil, nil
	}
	parser, found := optionalFieldParseTable[typebyte]
	if !found {
		sc.err = fmt.Errorf("unknown field type %c in PAF record", typebyte)
		return nil, nil
	}
	return tag, parser(sc)
}

// ParseRecord parses one line of a PAF file into a Record. The twelve
// mandatory columns are required; optional tag fields are collected
// into Tags. ParseRecord also performs structural consistency checks
// on the coordinate columns.
func (sc *StringScanner) ParseRecord() (*Record, error) {
	rec := &Record{}

	rec.QName = sc.doString()
	rec.QLength = sc.doInt32()
	rec.QStart = sc.doInt32()
	rec.QEnd = sc.doInt32()
	rec.Strand = sc.doStrand()
	rec.TName = sc.doString()
	rec.TLength = sc.doInt32()
	rec.TStart = sc.doInt32()
	rec.TEnd = sc.doInt32()
	rec.Matches = sc.doInt32()
	rec.AlignmentLength = sc.doInt32()
	mapq, _ := sc.readUntil('\t')
	if q, err := strconv.ParseUint(mapq, 10, 8); err != nil {
		if sc.err == nil {
			sc.err = err
		}
	} else {
		rec.MappingQuality = byte(q)
	}

	for sc.Len() > 0 {
		rec.Tags.Set(sc.ParseOptionalField())
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := rec.check(); err != nil {
		return nil, err
	}
	return rec, nil
}

// ParseRecord parses one line of a PAF file into a Record.
func ParseRecord(line string) (*Record, error) {
	var sc StringScanner
	sc.Reset(line)
	return sc.ParseRecord()
}

func (rec *Record) check() error {
	if rec.QStart < 0 || rec.QStart >= rec.QEnd || rec.QEnd > rec.QLength {
		return fmt.Errorf("invalid query interval [%v, %v) for %v of length %v",
			rec.QStart, rec.QEnd, rec.QName, rec.QLength)
	}
	if rec.TStart < 0 || rec.TStart >= rec.TEnd || rec.TEnd > rec.TLength {
		return fmt.Errorf("invalid target interval [%v, %v) for %v of length %v",
			rec.TStart, rec.TEnd, rec.TName, rec.TLength)
	}
	return nil
}
