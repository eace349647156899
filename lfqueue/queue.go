// Package lfqueue implements a Michael-Scott queue on hazard-eras
// reclamation. Dequeue retires the outgoing dummy node; because the
// algorithm holds the head and its successor at the same time, it needs a
// strategy with at least two hazard slots (the default provides three).
package lfqueue

import (
	"reclaim/eras"
	"reclaim/memory"
)

type node[T any] struct {
	eras.Node
	value T
	next  eras.Ptr[node[T]]
}

// Queue is a lock-free FIFO. Methods taking a *eras.Handle must be called
// with the calling goroutine's own handle.
type Queue[T any] struct {
	domain *eras.Domain
	head   eras.Ptr[node[T]]
	_      [56]byte
	tail   eras.Ptr[node[T]]
	_      [56]byte
	pool   *memory.Pool[node[T]]
}

// New creates an empty queue on the given reclamation domain.
func New[T any](d *eras.Domain) *Queue[T] {
	q := &Queue[T]{domain: d}
	q.pool = memory.NewPool(
		func() *node[T] { return &node[T]{} },
		func(n *node[T]) {
			var zero T
			n.value = zero
			n.next.Store(nil)
		},
	)
	dummy := q.pool.Get()
	d.Init(dummy)
	q.head.Store(dummy)
	q.tail.Store(dummy)
	return q
}

// Enqueue appends v. The error is slot exhaustion under a static strategy.
func (q *Queue[T]) Enqueue(h *eras.Handle, v T) error {
	n := q.pool.Get()
	q.domain.Init(n)
	n.value = v

	g := h.Guard()
	defer g.Reset()
	for {
		t, err := q.tail.Acquire(g)
		if err != nil {
			q.pool.Put(n)
			return err
		}
		next := t.next.Load()
		if next == nil {
			if t.next.CompareAndSwap(nil, n) {
				q.tail.CompareAndSwap(t, n)
				return nil
			}
			continue
		}
		// tail lags; help it forward
		q.tail.CompareAndSwap(t, next)
	}
}

// Dequeue removes and returns the oldest value. ok is false when the
// queue is empty.
func (q *Queue[T]) Dequeue(h *eras.Handle) (v T, ok bool, err error) {
	gh := h.Guard()
	gn := h.Guard()
	defer gh.Reset()
	defer gn.Reset()
	for {
		hd, err := q.head.Acquire(gh)
		if err != nil {
			return v, false, err
		}
		next, err := hd.next.Acquire(gn)
		if err != nil {
			return v, false, err
		}
		if next == nil {
			return v, false, nil
		}
		t := q.tail.Load()
		if hd == t {
			q.tail.CompareAndSwap(t, next)
		}
		if q.head.CompareAndSwap(hd, next) {
			v = next.value
			gh.Reclaim(hd, q.recycle)
			return v, true, nil
		}
	}
}

func (q *Queue[T]) recycle(obj eras.Reclaimable) {
	q.pool.Put(obj.(*node[T]))
}
