// Package pool wraps sync.Pool with type safety. The client uses it to
// recycle UDP receive buffers across lookups.
package pool

import "sync"

// Pool is a typed object pool.
type Pool[T any] struct {
	inner sync.Pool
}

// New creates a Pool that calls newFn when empty.
func New[T any](newFn func() T) *Pool[T] {
	return &Pool[T]{
		inner: sync.Pool{
			New: func() any { return newFn() },
		},
	}
}

// Get retrieves an item from the pool, constructing one if needed.
func (p *Pool[T]) Get() T {
	return p.inner.Get().(T)
}

// Put returns an item to the pool.
func (p *Pool[T]) Put(item T) {
	p.inner.Put(item)
}
