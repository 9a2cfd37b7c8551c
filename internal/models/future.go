package models

import (
	"context"
	"sync"
)

// Result pairs a value with the error that produced it.
type Result[T any] struct {
	Value T
	Err   error
}

// Future is the handle returned by the scheduler for a unit of work. It can
// be polled without blocking, waited on, or stopped, which cancels the
// context the work was started with.
type Future[T any] struct {
	mu       sync.Mutex
	value    T
	resolved bool

	done   chan struct{}
	cancel context.CancelFunc
}

// NewFuture creates an unresolved future. The cancel function is invoked by
// Stop to abort the underlying work.
func NewFuture[T any](cancel context.CancelFunc) *Future[T] {
	return &Future[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}
}

// Resolve sets the result and unblocks all waiters. Resolving twice is a
// no-op.
func (f *Future[T]) Resolve(value T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resolved {
		return
	}
	f.value = value
	f.resolved = true
	close(f.done)
}

// Poll returns the result and true if the work has finished.
func (f *Future[T]) Poll() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.resolved
}

// IsResolved reports whether the work has finished.
func (f *Future[T]) IsResolved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolved
}

// Stop cancels the context of the underlying work. The future resolves once
// the work returns.
func (f *Future[T]) Stop() {
	if f.cancel != nil {
		f.cancel()
	}
}

// Wait blocks until the work finishes or ctx is cancelled.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
