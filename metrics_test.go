package slotvec

import (
	"testing"
	"time"

	"github.com/armon/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorMetrics(t *testing.T) {
	v, err := New(0)
	require.NoError(t, err)

	// Test initial state
	m := v.Metrics()
	assert.Equal(t, VectorMetrics{MaxUsedIndex: -1}, m)
	assert.Zero(t, v.Utilization())
	assert.Zero(t, v.Fragmentation())

	for i := 0; i < 8; i++ {
		require.NoError(t, v.Insert(int32(i)))
	}
	m = v.Metrics()
	assert.Equal(t, 8, m.Size)
	assert.Equal(t, 8, m.Capacity)
	assert.Equal(t, 7, m.MaxUsedIndex)
	assert.Equal(t, uint64(4), m.Grows, "0 -> 1 -> 2 -> 4 -> 8")
	assert.InDelta(t, 1.0, m.Utilization, 1e-9)

	require.NoError(t, v.DeleteMany([]int{0, 2}))
	m = v.Metrics()
	assert.Equal(t, 2, m.FreeSlots)
	assert.InDelta(t, 0.25, m.Fragmentation, 1e-9)
	assert.InDelta(t, 0.75, m.Utilization, 1e-9)
	assert.Equal(t, uint64(0), m.Compactions)

	v.Compact(true)
	m = v.Metrics()
	assert.Equal(t, 0, m.FreeSlots)
	assert.Zero(t, m.Fragmentation)
	assert.Equal(t, uint64(1), m.Compactions)
}

func TestVectorMetricsAfterRelease(t *testing.T) {
	v, err := New(16)
	require.NoError(t, err)
	require.NoError(t, v.Insert(1))

	v.Release()

	m := v.Metrics()
	assert.Equal(t, 0, m.Size)
	assert.Equal(t, 0, m.Capacity)
	assert.Equal(t, -1, m.MaxUsedIndex)
	assert.Zero(t, m.Utilization)
	assert.Zero(t, m.Fragmentation)
}

func TestSafeVectorMetrics(t *testing.T) {
	s, err := NewSafe(4)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, s.Insert(int32(i)))
	}
	require.NoError(t, s.RemoveAt(1))

	assert.Equal(t, 1, s.FreeSlots())
	assert.InDelta(t, 0.25, s.Fragmentation(), 1e-9)
	assert.InDelta(t, 0.75, s.Utilization(), 1e-9)

	m := s.Metrics()
	assert.Equal(t, 3, m.Size)
	assert.Equal(t, 4, m.Capacity)
}

// sumCounter adds up a counter over every retained interval.
func sumCounter(sink *metrics.InmemSink, name string) (count int, sum float64) {
	for _, interval := range sink.Data() {
		if c, ok := interval.Counters[name]; ok {
			count += c.Count
			sum += c.Sum
		}
	}
	return count, sum
}

func TestVectorEmitsGoMetrics(t *testing.T) {
	sink := metrics.NewInmemSink(time.Minute, 5*time.Minute)
	cfg := metrics.DefaultConfig("")
	cfg.EnableHostname = false
	cfg.EnableRuntimeMetrics = false
	_, err := metrics.NewGlobal(cfg, sink)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = metrics.NewGlobal(metrics.DefaultConfig(""), &metrics.BlackholeSink{})
	})

	v, err := New(0, WithMetricsName("slotvec_test"))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, v.Insert(int32(i)))
	}
	require.NoError(t, v.DeleteMany([]int{0, 1}))
	v.Compact(true)

	count, _ := sumCounter(sink, "slotvec_test.grows")
	assert.Equal(t, 4, count)

	count, _ = sumCounter(sink, "slotvec_test.compactions")
	assert.Equal(t, 1, count)

	_, moved := sumCounter(sink, "slotvec_test.moved_slots")
	assert.InDelta(t, 3, moved, 1e-9)
}

func BenchmarkMetrics(b *testing.B) {
	v, err := New(1 << 16)
	require.NoError(b, err)
	for i := 0; i < 1<<16; i++ {
		_ = v.Insert(int32(i))
	}

	b.Run("Metrics", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			v.Metrics()
		}
	})

	b.Run("Fragmentation", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			v.Fragmentation()
		}
	})
}
