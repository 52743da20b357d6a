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
	"strconv"
	"sync"
)

// CigarOperations contains all the CIGAR operations accepted in the
// cg:Z: tag of a PAF record. M, =, and X align query and target
// bases; I consumes query bases only; D consumes target bases only;
// S and H are clipped query bases at the sequence ends without target
// correspondence.
const CigarOperations = "MIDSH=X"

var cigarOperationsTable = make(map[byte]byte, len(CigarOperations))

func init() {
	for _, c := range CigarOperations {
		cigarOperationsTable[byte(c)] = byte(c)
	}
}

func isDigit(char byte) bool { return ('0' <= char) && (char <= '9') }

// A CigarOperation is one length/opcode pair of a CIGAR string.
type CigarOperation struct {
	Length    int32
	Operation byte
}

func operationConsumesQueryBases(operation byte) bool {
	switch operation {
	case 'M', 'I', '=', 'X':
		return true
	default:
		return false
	}
}

func operationConsumesTargetBases(operation byte) bool {
	switch operation {
	case 'M', 'D', '=', 'X':
		return true
	default:
		return false
	}
}

func newCigarOperation(cigar string, i int) (op CigarOperation, j int, err error) {
	for j = i; ; j++ {
		if j >= len(cigar) {
			err = fmt.Errorf("truncated CIGAR operation at index %v", i)
			return
		}
		if char := cigar[j]; !isDigit(char) {
			if j == i {
				err = fmt.Errorf("missing length for CIGAR operation %c", char)
				return
			}
			length, nerr := strconv.ParseInt(cigar[i:j], 10, 32)
			if nerr != nil {
				err = nerr
				return
			}
			if operation := cigarOperationsTable[char]; operation != 0 {
				op = CigarOperation{int32(length), operation}
				j++
			} else {
				err = fmt.Errorf("invalid CIGAR operation %c", char)
			}
			return
		}
	}
}

var (
	cigarSliceCache      = map[string][]CigarOperation{"*": {}}
	cigarSliceCacheMutex = sync.RWMutex{}
)

func slowScanCigarString(cigar string) (slice []CigarOperation, err error) {
	for i := 0; i < len(cigar); {
		cigarOperation, j, err := newCigarOperation(cigar, i)
		if err != nil {
			return nil, fmt.Errorf("%v, while scanning CIGAR string %v", err.Error(), cigar)
		}
		slice = append(slice, cigarOperation)
		i = j
	}
	cigarSliceCacheMutex.Lock()
	if value, found := cigarSliceCache[cigar]; found {
		slice = value
	} else {
		cigarSliceCache[cigar] = slice
	}
	cigarSliceCacheMutex.Unlock()
	return slice, nil
}

// ScanCigarString converts a CIGAR string into a slice of
// CigarOperation. The result is shared and must not be modified.
// Scanning fails for operation codes outside CigarOperations and for
// missing or non-numeric lengths.
func ScanCigarString(cigar string) ([]CigarOperation, error) {
	cigarSliceCacheMutex.RLock()
	value, found := cigarSliceCache[cigar]
	cigarSliceCacheMutex.RUnlock()
	if found {
		return value, nil
	}
	return slowScanCigarString(cigar)
}

// CheckSpans verifies that the CIGAR-implied query and target spans
// agree with the coordinate columns of the record. Clipped bases lie
// outside the PAF query window and do not count towards either span.
func CheckSpans(rec *Record, ops []CigarOperation) error {
	var queryLength, targetLength int32
	for _, op := range ops {
		if operationConsumesQueryBases(op.Operation) {
			queryLength += op.Length
		}
		if operationConsumesTargetBases(op.Operation) {
			targetLength += op.Length
		}
	}
	if queryLength != rec.QEnd-rec.QStart {
		return fmt.Errorf("CIGAR query span %v disagrees with declared span [%v, %v) of %v",
			queryLength, rec.QStart, rec.QEnd, rec.QName)
	}
	if targetLength != rec.TEnd-rec.TStart {
		return fmt.Errorf("CIGAR target span %v disagrees with declared span [%v, %v) of %v",
			targetLength, rec.TStart, rec.TEnd, rec.TName)
	}
	return nil
}

// A Walker steps through a sequence of CIGAR operations, advancing
// the query and target positions together.
type Walker struct {
	ops  []CigarOperation
	next int
	done int32
}

// NewWalker returns a Walker over the given operations, positioned
// before the first operation.
func NewWalker(ops []CigarOperation) *Walker {
	return &Walker{ops: ops}
}

// Reset repositions the Walker before the first operation.
func (w *Walker) Reset() {
	w.next = 0
	w.done = 0
}

func min32(x, y int32) int32 {
	if x < y {
		return x
	}
	return y
}

// Advance consumes queryDelta query bases and returns the number of
// target bases consumed alongside them. Deletions crossed along the
// way widen the target span silently; a deletion immediately ahead of
// the cursor is not crossed until the next query base is consumed.
// Clipped bases advance neither position.
func (w *Walker) Advance(queryDelta int32) (targetDelta int32) {
	for queryDelta > 0 && w.next < len(w.ops) {
		op := w.ops[w.next]
		switch op.Operation {
		case 'M', '=', 'X':
			step := min32(queryDelta, op.Length-w.done)
			targetDelta += step
			queryDelta -= step
			w.done += step
		case 'I':
			step := min32(queryDelta, op.Length-w.done)
			queryDelta -= step
			w.done += step
		case 'D':
			targetDelta += op.Length
			w.done = op.Length
		default: // 'S', 'H'
			w.done = op.Length
		}
		if w.done == op.Length {
			w.next++
			w.done = 0
		}
	}
	return targetDelta
}
