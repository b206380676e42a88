// Package slotvec implements a growable int32 vector with lazy deletion.
//
// # Overview
//
// A Vector keeps its elements in a flat slot buffer next to an occupancy
// bitmap. Deleting an element clears its bit instead of shifting the tail, so
// removals are cheap and the storage develops holes. Holes are reused by
// later inserts and reclaimed in bulk by compaction.
//
// Callers address elements by logical index: the i-th occupied slot counted
// from the start of the buffer. Physical indices (positions in the buffer,
// holes included) only show through Data, Occupied and MaxUsedIndex.
//
// # Basic Usage
//
//	v, err := slotvec.New(16)
//	if err != nil {
//		return err
//	}
//	defer v.Release()
//
//	_ = v.Insert(10)
//	_ = v.Insert(20)
//	_ = v.Insert(30)
//
//	x, _ := v.Get(1)              // 20
//	_ = v.DeleteMany([]int{0, 2}) // indices refer to the numbering before the call
//	v.Compact(true)               // slide survivors to the front
//
// # Growth
//
// Inserting into a full vector doubles its capacity (an empty, zero-capacity
// vector grows to one slot). Growth allocates fresh storage and copies the old
// contents, so a failed allocation leaves the vector untouched and returns
// ErrAllocation. WithMaxCapacity bounds growth.
//
// # Compaction
//
// DeleteMany finishes with a non-forced Compact. It only runs when the used
// range [0, MaxUsedIndex] holds at least DefaultCompactionFloor free slots and
// their share of the range exceeds DefaultCompactionRatio. Both thresholds are
// configurable. Compact(true) always runs. Compaction preserves the relative
// order of elements.
//
// # Errors
//
// Index problems are reported as *IndexError values matching ErrOutOfRange or
// ErrContractViolation. A DeleteMany whose indices cannot all be resolved keeps
// the deletions it already applied.
//
// # Thread Safety
//
// Vector is not thread-safe. SafeVector wraps it with a mutex:
//
//	s, _ := slotvec.NewSafe(0)
//	defer s.Release()
//	_ = s.Insert(42)
//
// # Metrics and Monitoring
//
// Metrics returns a VectorMetrics snapshot. Growth and compaction events are
// also emitted through github.com/armon/go-metrics under the "slotvec" prefix
// (see WithMetricsName), so any configured go-metrics sink receives them.
package slotvec
