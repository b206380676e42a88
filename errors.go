package slotvec

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocation is returned when growing the storage fails. The vector is
	// left exactly as it was before the call.
	ErrAllocation = errors.New("slotvec: allocation failed")

	// ErrOutOfRange is returned when a logical index does not resolve to an element.
	ErrOutOfRange = errors.New("slotvec: index out of range")

	// ErrContractViolation is returned when a batch request is malformed
	// (longer than the vector, or indices not strictly ascending).
	ErrContractViolation = errors.New("slotvec: contract violation")

	// ErrInvalidCapacity is returned for negative or oversized capacities.
	ErrInvalidCapacity = errors.New("slotvec: invalid capacity")
)

// IndexError describes a failed index lookup.
//
// It matches ErrOutOfRange or ErrContractViolation via errors.Is, depending on Kind.
type IndexError struct {
	Op    string // operation name, e.g. "get" or "delete"
	Index int    // offending logical index
	Count int    // batch length when the batch as a whole is too long, 0 otherwise
	Size  int    // logical size at the time of the call
	Kind  error
}

func (e *IndexError) Error() string {
	if e.Count > 0 {
		return fmt.Sprintf("%s: %s: %d indices (size %d)", e.Op, e.Kind, e.Count, e.Size)
	}
	return fmt.Sprintf("%s: %s: index %d (size %d)", e.Op, e.Kind, e.Index, e.Size)
}

func (e *IndexError) Unwrap() error { return e.Kind }

func outOfRange(op string, index, size int) error {
	return &IndexError{Op: op, Index: index, Size: size, Kind: ErrOutOfRange}
}

func contractViolation(op string, index, size int) error {
	return &IndexError{Op: op, Index: index, Size: size, Kind: ErrContractViolation}
}

func batchTooLong(op string, count, size int) error {
	return &IndexError{Op: op, Count: count, Size: size, Kind: ErrContractViolation}
}
