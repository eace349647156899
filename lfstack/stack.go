// Package lfstack implements a Treiber stack whose popped nodes are
// recycled through hazard-eras reclamation: Pop guards the head before
// dereferencing it, and a successful CAS retires the node with a deleter
// that returns it to the pool.
package lfstack

import (
	"reclaim/eras"
	"reclaim/memory"
)

type node[T any] struct {
	eras.Node
	value T
	next  eras.Ptr[node[T]]
}

// Stack is a lock-free LIFO. Methods taking a *eras.Handle must be called
// with the calling goroutine's own handle.
type Stack[T any] struct {
	domain *eras.Domain
	head   eras.Ptr[node[T]]
	pool   *memory.Pool[node[T]]
}

// New creates an empty stack on the given reclamation domain.
func New[T any](d *eras.Domain) *Stack[T] {
	s := &Stack[T]{domain: d}
	s.pool = memory.NewPool(
		func() *node[T] { return &node[T]{} },
		func(n *node[T]) {
			var zero T
			n.value = zero
			n.next.Store(nil)
		},
	)
	return s
}

// Push adds v to the top of the stack. Push never dereferences shared
// nodes, so it needs no guard.
func (s *Stack[T]) Push(v T) {
	n := s.pool.Get()
	s.domain.Init(n)
	n.value = v
	for {
		head := s.head.Load()
		n.next.Store(head)
		if s.head.CompareAndSwap(head, n) {
			return
		}
	}
}

// Pop removes and returns the top value. ok is false when the stack is
// empty. The only possible error is slot exhaustion under a static
// strategy.
func (s *Stack[T]) Pop(h *eras.Handle) (v T, ok bool, err error) {
	g := h.Guard()
	defer g.Reset()
	for {
		n, err := s.head.Acquire(g)
		if err != nil {
			return v, false, err
		}
		if n == nil {
			return v, false, nil
		}
		next := n.next.Load()
		if s.head.CompareAndSwap(n, next) {
			v = n.value
			g.Reclaim(n, s.recycle)
			return v, true, nil
		}
	}
}

// Peek returns the top value without removing it.
func (s *Stack[T]) Peek(h *eras.Handle) (v T, ok bool, err error) {
	g := h.Guard()
	defer g.Reset()
	n, err := s.head.Acquire(g)
	if err != nil || n == nil {
		return v, false, err
	}
	return n.value, true, nil
}

func (s *Stack[T]) recycle(obj eras.Reclaimable) {
	s.pool.Put(obj.(*node[T]))
}
