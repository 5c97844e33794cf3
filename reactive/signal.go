// Package reactive provides explicit change notification for values which
// drive style recomputation.
package reactive

import (
	"slices"
	"sync"
)

type observer[T any] struct {
	id uint64
	fn func(T)
}

// Signal holds a value and notifies observers synchronously, in subscription
// order, every time a new value is set. It is safe for concurrent use.
type Signal[T any] struct {
	mu        sync.Mutex
	value     T
	nextID    uint64
	observers []observer[T]
}

// NewSignal creates signal with initial value.
func NewSignal[T any](value T) *Signal[T] {
	return &Signal[T]{value: value}
}

// Get returns current value.
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.value
}

// Set stores value and notifies observers.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	s.value = value
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	notify(observers, value)
}

// Update sets value computed from the current one. Computation and store are
// atomic, fn must not call back into the signal.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	value := fn(s.value)
	s.value = value
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	notify(observers, value)
}

func notify[T any](observers []observer[T], value T) {
	for _, o := range observers {
		o.fn(value)
	}
}

// Subscribe registers observer. Returned function cancels subscription, it
// may be called any number of times.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observer[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.unsubscribe(id)
		})
	}
}

// Observers returns number of active subscriptions.
func (s *Signal[T]) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.observers)
}

func (s *Signal[T]) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observers = slices.DeleteFunc(s.observers, func(o observer[T]) bool {
		return o.id == id
	})
}
