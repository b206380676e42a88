package slotvec

import (
	"fmt"
	"math"
	"runtime"

	"github.com/bits-and-blooms/bitset"
)

// slots is the backing storage of a Vector: the element buffer and its
// occupancy bits, always of equal length.
type slots struct {
	buf      []int32
	occupied *bitset.BitSet
}

// allocSlots returns zeroed storage for n slots with every slot free.
// A runtime allocation panic (e.g. "makeslice: len out of range") is reported
// as ErrAllocation instead of crashing the caller.
func allocSlots(n int) (s slots, err error) {
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}
			s, err = slots{}, fmt.Errorf("%w: %d slots: %v", ErrAllocation, n, re)
		}
	}()

	buf := make([]int32, n)
	occupied := bitset.New(uint(n))
	// bitset.New swallows its own allocation failure and hands back an empty set.
	if occupied.Len() != uint(n) {
		return slots{}, fmt.Errorf("%w: occupancy bitmap for %d slots", ErrAllocation, n)
	}
	return slots{buf: buf, occupied: occupied}, nil
}

// growSlots returns new storage of n slots holding a copy of src.
// Slots past len(src.buf) are zero and free. src is never modified, so the
// caller can keep it when growth fails.
func growSlots(src slots, n int) (slots, error) {
	dst, err := allocSlots(n)
	if err != nil {
		return slots{}, err
	}
	copy(dst.buf, src.buf)
	if src.occupied != nil {
		src.occupied.Copy(dst.occupied)
	}
	return dst, nil
}

// nextCapacity doubles capacity, with a floor of one slot so growth from an
// empty vector makes progress.
func nextCapacity(capacity int) int {
	switch {
	case capacity == 0:
		return 1
	case capacity > math.MaxInt/2:
		return math.MaxInt
	}
	return capacity * 2
}
