package slotvec

import (
	"time"

	"github.com/armon/go-metrics"
)

// FreeSlots returns the number of free slots inside the used range
// [0, MaxUsedIndex].
func (v *Vector) FreeSlots() int {
	return v.maxUsedIndex + 1 - v.size
}

// Fragmentation returns FreeSlots divided by the used range length (0.0 to 1.0).
// Returns 0.0 for an empty vector.
func (v *Vector) Fragmentation() float64 {
	used := v.maxUsedIndex + 1
	if used == 0 {
		return 0
	}
	return float64(v.FreeSlots()) / float64(used)
}

// Utilization returns the ratio of elements to allocated slots (0.0 to 1.0).
// Returns 0.0 if the vector has no capacity.
func (v *Vector) Utilization() float64 {
	capacity := v.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(v.size) / float64(capacity)
}

// Metrics returns a snapshot of vector statistics.
func (v *Vector) Metrics() VectorMetrics {
	return VectorMetrics{
		Size:          v.Size(),
		Capacity:      v.Capacity(),
		MaxUsedIndex:  v.MaxUsedIndex(),
		FreeSlots:     v.FreeSlots(),
		Fragmentation: v.Fragmentation(),
		Utilization:   v.Utilization(),
		Grows:         v.grows,
		Compactions:   v.compactions,
	}
}

// VectorMetrics contains statistical information about a vector.
type VectorMetrics struct {
	Size          int     `json:"size"`           // Elements stored
	Capacity      int     `json:"capacity"`       // Allocated slots
	MaxUsedIndex  int     `json:"max_used_index"` // Highest occupied slot, -1 when empty
	FreeSlots     int     `json:"free_slots"`     // Holes inside the used range
	Fragmentation float64 `json:"fragmentation"`  // FreeSlots / used range (0.0-1.0)
	Utilization   float64 `json:"utilization"`    // Size / Capacity (0.0-1.0)
	Grows         uint64  `json:"grows"`          // Storage reallocations
	Compactions   uint64  `json:"compactions"`    // Compaction passes that ran
}

// go-metrics emission

func (v *Vector) metricKey(name string) []string {
	return []string{v.opts.metricsName, name}
}

func (v *Vector) emitGrow(capacity int) {
	metrics.IncrCounter(v.metricKey("grows"), 1)
	metrics.SetGauge(v.metricKey("capacity"), float32(capacity))
}

func (v *Vector) emitCompaction(start time.Time, moved int) {
	metrics.MeasureSince(v.metricKey("compaction"), start)
	metrics.IncrCounter(v.metricKey("compactions"), 1)
	metrics.IncrCounter(v.metricKey("moved_slots"), float32(moved))
	metrics.SetGauge(v.metricKey("size"), float32(v.size))
}

// Thread-safe metrics for SafeVector

// FreeSlots thread-safely returns the number of holes inside the used range.
func (s *SafeVector) FreeSlots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.FreeSlots()
}

// Fragmentation thread-safely returns the fragmentation ratio.
func (s *SafeVector) Fragmentation() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Fragmentation()
}

// Utilization thread-safely returns the ratio of elements to slots.
func (s *SafeVector) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Utilization()
}

// Metrics thread-safely returns a snapshot of vector statistics.
func (s *SafeVector) Metrics() VectorMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Metrics()
}
