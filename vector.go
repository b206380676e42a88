package slotvec

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Vector is a growable array of int32 slots. Deleting an element only clears
// its occupancy bit; holes are reclaimed by later inserts or by Compact.
//
// Elements are addressed by logical index, the rank of an occupied slot among
// all occupied slots. Not goroutine-safe. Use SafeVector for concurrent access.
type Vector struct {
	slots

	size         int // number of occupied slots
	maxUsedIndex int // highest occupied physical index, -1 when empty

	opts   options
	logger hclog.Logger

	grows       uint64
	compactions uint64
}

// New creates a Vector with room for capacity elements. A zero capacity is
// valid; the first insert grows it.
func New(capacity int, opts ...Option) (*Vector, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, fmt.Errorf("slotvec: invalid options: %w", err)
	}
	if capacity < 0 || capacity > o.maxCapacity {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrInvalidCapacity, capacity, o.maxCapacity)
	}

	s, err := allocSlots(capacity)
	if err != nil {
		return nil, err
	}

	return &Vector{
		slots:        s,
		maxUsedIndex: -1,
		opts:         o,
		logger:       o.logger.Named("slotvec"),
	}, nil
}

// Insert stores value in the lowest free slot below Size, or appends it,
// growing the storage when full. On ErrAllocation the vector is unchanged.
func (v *Vector) Insert(value int32) error {
	v.panicIfReleased()

	// Fast path: reuse a hole. If [0, size) has none, every element lives
	// there and slot size is free.
	if i, ok := v.occupied.NextClear(0); ok && int(i) < v.size {
		v.buf[i] = value
		v.occupied.Set(i)
		v.size++
		return nil
	}

	return v.pushBack(value)
}

// pushBack appends value at physical index size.
func (v *Vector) pushBack(value int32) error {
	if v.size == len(v.buf) {
		if err := v.grow(nextCapacity(len(v.buf))); err != nil {
			return err
		}
	}

	i := v.size
	v.buf[i] = value
	v.occupied.Set(uint(i))
	v.size++
	v.maxUsedIndex = i
	return nil
}

// Get returns the element at logical index i.
func (v *Vector) Get(i int) (int32, error) {
	v.panicIfReleased()
	if i < 0 || i >= v.size {
		return 0, outOfRange("get", i, v.size)
	}
	return v.buf[v.occupied.Select(uint(i))], nil
}

// RemoveAt deletes the element at logical index i.
func (v *Vector) RemoveAt(i int) error {
	v.panicIfReleased()
	if i < 0 || i >= v.size {
		return outOfRange("remove", i, v.size)
	}
	return v.DeleteMany([]int{i})
}

// DeleteMany deletes the elements at the given logical indices, which must be
// strictly ascending and refer to the numbering before the call. A
// non-forced Compact runs afterwards.
//
// If an index does not resolve, ErrOutOfRange is returned and the deletions
// already applied are kept.
func (v *Vector) DeleteMany(indices []int) error {
	v.panicIfReleased()
	if len(indices) == 0 {
		return nil
	}
	if err := v.checkBatch("delete", indices); err != nil {
		return err
	}

	next, logical := 0, 0
	for i, ok := v.occupied.NextSet(0); ok && int(i) <= v.maxUsedIndex; i, ok = v.occupied.NextSet(i + 1) {
		if logical == indices[next] {
			v.occupied.Clear(i)
			v.size--
			if int(i) == v.maxUsedIndex {
				v.maxUsedIndex = v.lastOccupied(int(i) - 1)
			}

			next++
			if next == len(indices) {
				if v.opts.autoCompact {
					v.Compact(false)
				}
				return nil
			}
		}
		logical++
	}

	v.logger.Warn("delete partially applied", "requested", len(indices), "deleted", next)
	return outOfRange("delete", indices[next], v.size+next)
}

// GetMany returns the elements at the given strictly ascending logical
// indices. Either all of them resolve or nil and an error are returned.
func (v *Vector) GetMany(indices []int) ([]int32, error) {
	v.panicIfReleased()
	if len(indices) == 0 {
		return []int32{}, nil
	}
	if err := v.checkBatch("get", indices); err != nil {
		return nil, err
	}

	out := make([]int32, 0, len(indices))
	logical := 0
	for i, ok := v.occupied.NextSet(0); ok && int(i) <= v.maxUsedIndex; i, ok = v.occupied.NextSet(i + 1) {
		if logical == indices[len(out)] {
			out = append(out, v.buf[i])
			if len(out) == len(indices) {
				return out, nil
			}
		}
		logical++
	}

	return nil, outOfRange("get", indices[len(out)], v.size)
}

// Compact slides occupied slots down so they fill [0, Size) in their original
// order. Unless force is set it only runs when the used range holds at least
// the compaction floor of free slots and their share exceeds the ratio.
func (v *Vector) Compact(force bool) {
	v.panicIfReleased()
	if !force && !v.shouldCompact() {
		return
	}

	start := time.Now()
	var write uint
	moved := 0
	for read, ok := v.occupied.NextSet(0); ok; read, ok = v.occupied.NextSet(read + 1) {
		if read != write {
			v.buf[write] = v.buf[read]
			v.occupied.Set(write)
			v.occupied.Clear(read)
			moved++
		}
		write++
	}
	v.maxUsedIndex = int(write) - 1
	v.compactions++

	v.logger.Debug("compacted", "forced", force, "moved", moved, "max_used_index", v.maxUsedIndex)
	v.emitCompaction(start, moved)
}

func (v *Vector) shouldCompact() bool {
	used := v.maxUsedIndex + 1
	free := used - v.size
	if used == 0 || free < v.opts.compactionFloor {
		return false
	}
	return float64(free)/float64(used) > v.opts.compactionRatio
}

// Reserve grows the storage to hold at least n slots.
func (v *Vector) Reserve(n int) error {
	v.panicIfReleased()
	if n < 0 {
		return fmt.Errorf("%w: reserve %d", ErrInvalidCapacity, n)
	}
	if n <= len(v.buf) {
		return nil
	}
	if n > v.opts.maxCapacity {
		return fmt.Errorf("%w: reserve %d exceeds max capacity %d", ErrAllocation, n, v.opts.maxCapacity)
	}
	return v.grow(n)
}

// Reset drops every element but keeps the allocated storage for reuse.
func (v *Vector) Reset() {
	v.panicIfReleased()
	v.occupied.ClearAll()
	v.size = 0
	v.maxUsedIndex = -1
}

// Release drops the storage and makes the vector unusable.
// Any subsequent operation other than the accessors panics.
func (v *Vector) Release() {
	v.slots = slots{}
	v.size = 0
	v.maxUsedIndex = -1
}

// Size returns the number of elements.
func (v *Vector) Size() int {
	return v.size
}

// Capacity returns the number of allocated slots.
func (v *Vector) Capacity() int {
	return len(v.buf)
}

// MaxUsedIndex returns the highest occupied physical index, or -1.
func (v *Vector) MaxUsedIndex() int {
	return v.maxUsedIndex
}

// Data returns the raw slot buffer, Capacity elements long. Only occupied
// slots hold meaningful values. The slice is invalidated by growth.
func (v *Vector) Data() []int32 {
	v.panicIfReleased()
	return v.buf
}

// Occupied reports whether physical slot i holds an element.
func (v *Vector) Occupied(i int) bool {
	v.panicIfReleased()
	if i < 0 || i >= len(v.buf) {
		return false
	}
	return v.occupied.Test(uint(i))
}

// grow replaces the storage with one of want slots, clamped to the configured
// maximum. The old storage is kept on failure.
func (v *Vector) grow(want int) error {
	old := len(v.buf)
	n := min(want, v.opts.maxCapacity)
	if n <= old {
		err := fmt.Errorf("%w: capacity %d is at the limit %d", ErrAllocation, old, v.opts.maxCapacity)
		v.logger.Error("cannot grow storage", "capacity", old, "requested", want, "error", err)
		return err
	}

	grown, err := growSlots(v.slots, n)
	if err != nil {
		v.logger.Error("cannot grow storage", "capacity", old, "requested", n, "error", err)
		return err
	}
	v.slots = grown
	v.grows++

	v.logger.Debug("grew storage", "from", old, "to", n)
	v.emitGrow(n)
	return nil
}

// checkBatch validates a batch of logical indices before any mutation.
func (v *Vector) checkBatch(op string, indices []int) error {
	if len(indices) > v.size {
		return batchTooLong(op, len(indices), v.size)
	}
	for k, idx := range indices {
		if idx < 0 {
			return outOfRange(op, idx, v.size)
		}
		if k > 0 && idx <= indices[k-1] {
			return contractViolation(op, idx, v.size)
		}
	}
	return nil
}

// lastOccupied scans down from physical index from for an occupied slot.
func (v *Vector) lastOccupied(from int) int {
	for ; from >= 0; from-- {
		if v.occupied.Test(uint(from)) {
			return from
		}
	}
	return -1
}

// panicIfReleased panics if the vector has been released.
func (v *Vector) panicIfReleased() {
	if v.occupied == nil {
		panic("slotvec: use after Release()")
	}
}
