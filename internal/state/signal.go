// Package state owns the in-memory view of the Docker engine: the current
// resource collections, the transient UI flags, and the operations that
// refresh or mutate them. All writes go through this package; the TUI only
// reads and subscribes.
package state

import "sync"

// Signal is a value cell that notifies subscribers when it is replaced.
// Reads return the current value, writes swap it wholesale. Notification
// is coalesced: a subscriber channel has capacity one, so rapid writes
// collapse into a single wake-up and a slow reader never blocks a writer.
type Signal[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[chan struct{}]struct{}
}

// NewSignal creates a Signal holding an initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		value: initial,
		subs:  make(map[chan struct{}]struct{}),
	}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the value and wakes all subscribers. When two writers
// race, whichever acquires the cell last determines the final value.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	s.mu.Unlock()
}

// Subscribe registers a new capacity-one notification channel.
func (s *Signal[T]) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	s.Attach(ch)
	return ch
}

// Attach registers an existing channel, letting one channel observe
// several signals at once.
func (s *Signal[T]) Attach(ch chan struct{}) {
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
}

// Detach removes a channel registered with Subscribe or Attach.
func (s *Signal[T]) Detach(ch chan struct{}) {
	s.mu.Lock()
	delete(s.subs, ch)
	s.mu.Unlock()
}
