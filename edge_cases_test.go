package slotvec_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/pavanmanishd/slotvec"
)

// TestEdgeCases covers boundary capacities, options and lifecycle misuse.
func TestEdgeCases(t *testing.T) {
	t.Run("ZeroAndNegativeCapacities", func(t *testing.T) {
		testCases := []struct {
			capacity int
			wantErr  bool
		}{
			{0, false},
			{1, false},
			{-1, true},
			{-1000, true},
			{math.MinInt, true},
		}

		for _, tc := range testCases {
			v, err := slotvec.New(tc.capacity)
			if tc.wantErr {
				if !errors.Is(err, slotvec.ErrInvalidCapacity) {
					t.Errorf("New(%d): got err %v, want ErrInvalidCapacity", tc.capacity, err)
				}
				continue
			}
			if err != nil {
				t.Fatalf("New(%d): unexpected error %v", tc.capacity, err)
			}
			if v.Capacity() != tc.capacity {
				t.Errorf("New(%d): got capacity %d", tc.capacity, v.Capacity())
			}
			v.Release()
		}
	})

	t.Run("InvalidOptions", func(t *testing.T) {
		_, err := slotvec.New(4,
			slotvec.WithCompactionFloor(-1),
			slotvec.WithCompactionRatio(1.5),
			slotvec.WithMaxCapacity(0),
			slotvec.WithMetricsName(""),
		)
		if err == nil {
			t.Fatal("expected invalid options to be rejected")
		}
		for _, want := range []string{"compaction floor", "compaction ratio", "max capacity", "metrics name"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q does not mention %q", err, want)
			}
		}
	})

	t.Run("NaNRatio", func(t *testing.T) {
		if _, err := slotvec.New(4, slotvec.WithCompactionRatio(math.NaN())); err == nil {
			t.Error("expected NaN ratio to be rejected")
		}
	})

	t.Run("NilLogger", func(t *testing.T) {
		v, err := slotvec.New(0, slotvec.WithLogger(nil))
		if err != nil {
			t.Fatalf("New with nil logger: %v", err)
		}
		if err := v.Insert(1); err != nil {
			t.Errorf("Insert: %v", err)
		}
	})

	t.Run("MaxCapacityOfOne", func(t *testing.T) {
		v, err := slotvec.New(0, slotvec.WithMaxCapacity(1))
		if err != nil {
			t.Fatal(err)
		}
		if err := v.Insert(1); err != nil {
			t.Fatalf("first insert: %v", err)
		}
		if err := v.Insert(2); !errors.Is(err, slotvec.ErrAllocation) {
			t.Errorf("second insert: got %v, want ErrAllocation", err)
		}
		if v.Size() != 1 || v.Capacity() != 1 {
			t.Errorf("state changed after failed growth: size %d capacity %d", v.Size(), v.Capacity())
		}
	})

	t.Run("UseAfterRelease", func(t *testing.T) {
		v, err := slotvec.New(8)
		if err != nil {
			t.Fatal(err)
		}
		v.Release()

		testPanic := func(name string, fn func()) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("%s: expected panic after Release()", name)
				}
			}()
			fn()
		}

		testPanic("Insert", func() { _ = v.Insert(1) })
		testPanic("Get", func() { _, _ = v.Get(0) })
		testPanic("Compact", func() { v.Compact(false) })
		testPanic("Occupied", func() { v.Occupied(0) })
		testPanic("Reserve", func() { _ = v.Reserve(1) })
	})

	t.Run("MultipleReleases", func(t *testing.T) {
		v, err := slotvec.New(8)
		if err != nil {
			t.Fatal(err)
		}
		v.Release()
		// Multiple releases should be safe
		v.Release()
		v.Release()
	})

	t.Run("OccupiedOutOfBounds", func(t *testing.T) {
		v, err := slotvec.New(2)
		if err != nil {
			t.Fatal(err)
		}
		if v.Occupied(-1) || v.Occupied(2) || v.Occupied(math.MaxInt) {
			t.Error("out of bounds slots must report free")
		}
	})
}

// TestValueIntegrity checks that growth and compaction never mix up values.
func TestValueIntegrity(t *testing.T) {
	v, err := slotvec.New(1)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Release()

	for i := int32(0); i < 1000; i++ {
		if err := v.Insert(i * 3); err != nil {
			t.Fatal(err)
		}
	}

	// Drop every other element; the resulting fragmentation triggers compaction.
	odd := make([]int, 0, 500)
	for i := 1; i < 1000; i += 2 {
		odd = append(odd, i)
	}
	if err := v.DeleteMany(odd); err != nil {
		t.Fatal(err)
	}
	if v.MaxUsedIndex() != v.Size()-1 {
		t.Errorf("expected automatic compaction, max used index %d size %d", v.MaxUsedIndex(), v.Size())
	}

	for i := 0; i < v.Size(); i++ {
		got, err := v.Get(i)
		if err != nil {
			t.Fatal(err)
		}
		if want := int32(i * 6); got != want {
			t.Errorf("Get(%d) = %d, want %d", i, got, want)
		}
	}
}

// TestBoundaryConditions tests boundary conditions
func TestBoundaryConditions(t *testing.T) {
	t.Run("ExactCapacityFill", func(t *testing.T) {
		v, err := slotvec.New(64)
		if err != nil {
			t.Fatal(err)
		}
		for i := int32(0); i < 64; i++ {
			if err := v.Insert(i); err != nil {
				t.Fatal(err)
			}
		}
		if v.Capacity() != 64 {
			t.Errorf("capacity after exact fill = %d, want 64", v.Capacity())
		}

		// This should trigger growth
		if err := v.Insert(64); err != nil {
			t.Fatal(err)
		}
		if v.Capacity() != 128 {
			t.Errorf("capacity after overflow = %d, want 128", v.Capacity())
		}
	})

	t.Run("WordBoundaryHoles", func(t *testing.T) {
		v, err := slotvec.New(130)
		if err != nil {
			t.Fatal(err)
		}
		for i := int32(0); i < 130; i++ {
			if err := v.Insert(i); err != nil {
				t.Fatal(err)
			}
		}
		if err := v.DeleteMany([]int{63, 64, 127, 128}); err != nil {
			t.Fatal(err)
		}

		got, err := v.GetMany([]int{62, 63, 124, 125})
		if err != nil {
			t.Fatal(err)
		}
		want := []int32{62, 65, 126, 129}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("GetMany[%d] = %d, want %d", i, got[i], want[i])
			}
		}
	})

	t.Run("ReuseAfterPartialDelete", func(t *testing.T) {
		v, err := slotvec.New(4)
		if err != nil {
			t.Fatal(err)
		}
		for _, x := range []int32{1, 2, 3} {
			_ = v.Insert(x)
		}
		if err := v.DeleteMany([]int{0, 3}); !errors.Is(err, slotvec.ErrOutOfRange) {
			t.Fatalf("got %v, want ErrOutOfRange", err)
		}
		if v.Size() != 2 {
			t.Fatalf("partial delete should keep applied removal, size %d", v.Size())
		}
		if err := v.Insert(9); err != nil {
			t.Fatal(err)
		}
		if !v.Occupied(0) || v.Data()[0] != 9 {
			t.Error("insert should reuse the hole left by the partial delete")
		}
	})
}
