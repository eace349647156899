// Package memory provides node pooling for the lock-free structures built
// on hazard-eras reclamation. Deleters return reclaimed nodes here, and
// mutators draw fresh nodes from here, so steady-state workloads run
// allocation-free.
package memory

import "sync"

// Pool is a reusable, type-agnostic node pool. An optional reset function
// runs on every Put so recycled nodes do not leak references into their
// next incarnation.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T)
}

// NewPool creates a pool with the given constructor. reset may be nil.
func NewPool[T any](construct func() *T, reset func(*T)) *Pool[T] {
	p := &Pool[T]{reset: reset}
	p.pool.New = func() any { return construct() }
	return p
}

// Get retrieves a node from the pool.
func (p *Pool[T]) Get() *T {
	return p.pool.Get().(*T)
}

// Put returns a node to the pool.
func (p *Pool[T]) Put(obj *T) {
	if p.reset != nil {
		p.reset(obj)
	}
	p.pool.Put(obj)
}
