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
	"errors"
	"sort"
)

// ErrMissingCigar flags a PAF record without a cg:Z: tag.
var ErrMissingCigar = errors.New("PAF record has no cg:Z: tag")

// A checkpoint records the cumulative query/target offsets at the
// boundary of one CIGAR operation.
type checkpoint struct {
	qoff, toff int32
	operation  byte
}

// A Mapping is a monotonic step function from query offsets within
// [QueryStart, QueryEnd] to target offsets, derived by replaying the
// CIGAR operations of one alignment record. Target coordinates are
// always forward-strand, also for reverse-strand records; only the
// strand column of the output reflects orientation.
type Mapping struct {
	qstart, qend int32
	tstart, tend int32
	checkpoints  []checkpoint
}

// NewMapping scans and validates the CIGAR of the given record and
// builds its coordinate mapping. It records a checkpoint at every
// operation boundary plus a final sentinel at (query end, target end).
func NewMapping(rec *Record) (*Mapping, error) {
	cigar, found := rec.Cigar()
	if !found {
		return nil, ErrMissingCigar
	}
	ops, err := ScanCigarString(cigar)
	if err != nil {
		return nil, err
	}
	if err := CheckSpans(rec, ops); err != nil {
		return nil, err
	}
	q, t := rec.QStart, rec.TStart
	checkpoints := make([]checkpoint, 0, len(ops)+1)
	for _, op := range ops {
		switch op.Operation {
		case 'M', '=', 'X':
			checkpoints = append(checkpoints, checkpoint{q, t, op.Operation})
			q += op.Length
			t += op.Length
		case 'I':
			checkpoints = append(checkpoints, checkpoint{q, t, 'I'})
			q += op.Length
		case 'D':
			checkpoints = append(checkpoints, checkpoint{q, t, 'D'})
			t += op.Length
		default: // 'S', 'H': clipped bases fall outside [QStart, QEnd)
		}
	}
	checkpoints = append(checkpoints, checkpoint{q, t, 0})
	return &Mapping{
		qstart:      rec.QStart,
		qend:        rec.QEnd,
		tstart:      rec.TStart,
		tend:        rec.TEnd,
		checkpoints: checkpoints,
	}, nil
}

// QueryStart returns the first mapped query offset.
func (m *Mapping) QueryStart() int32 { return m.qstart }

// QueryEnd returns the query offset one past the last mapped one.
func (m *Mapping) QueryEnd() int32 { return m.qend }

// TargetStart returns the first target offset of the alignment.
func (m *Mapping) TargetStart() int32 { return m.tstart }

// TargetEnd returns the target offset one past the last aligned one.
func (m *Mapping) TargetEnd() int32 { return m.tend }

// TargetPos maps a query offset to a target offset. Offsets inside an
// aligned run get the remaining run delta; offsets inside an
// insertion snap left to the target offset immediately preceding the
// insertion. Query offsets outside [QueryStart, QueryEnd] are
// unmapped and return false.
func (m *Mapping) TargetPos(qoff int32) (int32, bool) {
	if qoff < m.qstart || qoff > m.qend {
		return 0, false
	}
	i := sort.Search(len(m.checkpoints), func(i int) bool {
		return m.checkpoints[i].qoff > qoff
	}) - 1
	if i < 0 {
		return 0, false
	}
	cp := m.checkpoints[i]
	switch cp.operation {
	case 'M', '=', 'X':
		return cp.toff + (qoff - cp.qoff), true
	default:
		return cp.toff, true
	}
}

// QueryPos is the inverse of TargetPos. Target offsets inside a
// deletion snap left to the query offset immediately preceding the
// deletion. Target offsets outside [TargetStart, TargetEnd] return
// false.
func (m *Mapping) QueryPos(toff int32) (int32, bool) {
	if toff < m.tstart || toff > m.tend {
		return 0, false
	}
	i := sort.Search(len(m.checkpoints), func(i int) bool {
		return m.checkpoints[i].toff > toff
	}) - 1
	if i < 0 {
		return 0, false
	}
	cp := m.checkpoints[i]
	switch cp.operation {
	case 'M', '=', 'X':
		return cp.qoff + (toff - cp.toff), true
	default:
		return cp.qoff, true
	}
}
