// Package once provides a process-wide resource handle that is opened at most once.
package once

import "sync"

// Handle lazily opens a shared resource (a DB pool, a Mongo client) on first use.
// Every later call returns the same value and error, including a failed open.
type Handle[T any] struct {
	once  sync.Once
	open  func() (T, error)
	value T
	err   error
}

// NewHandle creates a Handle that calls open exactly once.
func NewHandle[T any](open func() (T, error)) *Handle[T] {
	return &Handle[T]{open: open}
}

// Get returns the shared resource, opening it on the first call.
func (h *Handle[T]) Get() (T, error) {
	h.once.Do(func() {
		h.value, h.err = h.open()
	})
	return h.value, h.err
}
