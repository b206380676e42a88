package slotvec

import (
	"sync"
)

// SafeVector is a mutex-protected wrapper around Vector for concurrent access.
// Every method holds the lock for its whole duration.
type SafeVector struct {
	mu sync.Mutex
	v  *Vector
}

// NewSafe creates a new thread-safe vector. See New.
func NewSafe(capacity int, opts ...Option) (*SafeVector, error) {
	v, err := New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &SafeVector{v: v}, nil
}

// Insert thread-safely stores value.
func (s *SafeVector) Insert(value int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Insert(value)
}

// Get thread-safely returns the element at logical index i.
func (s *SafeVector) Get(i int) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Get(i)
}

// GetMany thread-safely returns the elements at the given logical indices.
func (s *SafeVector) GetMany(indices []int) ([]int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetMany(indices)
}

// RemoveAt thread-safely deletes the element at logical index i.
func (s *SafeVector) RemoveAt(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.RemoveAt(i)
}

// DeleteMany thread-safely deletes the elements at the given logical indices.
func (s *SafeVector) DeleteMany(indices []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.DeleteMany(indices)
}

// Compact thread-safely compacts the vector.
func (s *SafeVector) Compact(force bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Compact(force)
}

// Reserve thread-safely grows the storage to at least n slots.
func (s *SafeVector) Reserve(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Reserve(n)
}

// Reset thread-safely drops every element and keeps the storage.
func (s *SafeVector) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Reset()
}

// Release thread-safely drops the storage and makes the vector unusable.
func (s *SafeVector) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Release()
}

// Size thread-safely returns the number of elements.
func (s *SafeVector) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Size()
}

// Capacity thread-safely returns the number of allocated slots.
func (s *SafeVector) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Capacity()
}

// MaxUsedIndex thread-safely returns the highest occupied physical index.
func (s *SafeVector) MaxUsedIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.MaxUsedIndex()
}

// Occupied thread-safely reports whether physical slot i holds an element.
func (s *SafeVector) Occupied(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Occupied(i)
}

// Data returns a copy of the raw slot buffer. A live view would escape the lock.
func (s *SafeVector) Data() []int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int32(nil), s.v.Data()...)
}

// Do runs fn with exclusive access to the underlying vector, for callers that
// need several operations to appear atomic. fn must not retain v.
func (s *SafeVector) Do(fn func(v *Vector) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.v)
}
