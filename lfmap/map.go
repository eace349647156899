// Package lfmap implements a lock-free hash map with copy-on-write
// buckets. Bucket chains are immutable once published: mutators rebuild
// the affected prefix, swap the bucket head by CAS, and retire every
// replaced node as one hazard-eras batch. Readers therefore hold a single
// Guard over the bucket head for an entire traversal; one published era
// protects the whole chain snapshot.
package lfmap

import (
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"reclaim/eras"
	"reclaim/memory"
)

type entry[V any] struct {
	eras.Node
	key   string
	value V
	next  *entry[V] // immutable once the entry is published
}

// Map is a lock-free string-keyed hash map. Methods taking a
// *eras.Handle must be called with the calling goroutine's own handle.
type Map[V any] struct {
	domain  *eras.Domain
	buckets []eras.Ptr[entry[V]]
	mask    uint64
	size    atomic.Int64
	pool    *memory.Pool[entry[V]]
}

// New creates a map with the given bucket count, rounded up to a power
// of two.
func New[V any](d *eras.Domain, buckets int) *Map[V] {
	n := 1
	for n < buckets {
		n <<= 1
	}
	m := &Map[V]{
		domain:  d,
		buckets: make([]eras.Ptr[entry[V]], n),
		mask:    uint64(n - 1),
	}
	m.pool = memory.NewPool(
		func() *entry[V] { return &entry[V]{} },
		func(e *entry[V]) {
			var zero V
			e.key = ""
			e.value = zero
			e.next = nil
		},
	)
	return m
}

func (m *Map[V]) bucket(key string) *eras.Ptr[entry[V]] {
	return &m.buckets[xxhash.Sum64String(key)&m.mask]
}

// Len reports the current number of entries.
func (m *Map[V]) Len() int { return int(m.size.Load()) }

// Get returns the value stored under key.
func (m *Map[V]) Get(h *eras.Handle, key string) (v V, ok bool, err error) {
	g := h.Guard()
	defer g.Reset()
	head, err := m.bucket(key).Acquire(g)
	if err != nil {
		return v, false, err
	}
	for e := head; e != nil; e = e.next {
		if e.key == key {
			return e.value, true, nil
		}
	}
	return v, false, nil
}

// Put stores value under key, replacing any previous entry.
func (m *Map[V]) Put(h *eras.Handle, key string, value V) error {
	b := m.bucket(key)
	g := h.Guard()
	defer g.Reset()
	for {
		head, err := b.Acquire(g)
		if err != nil {
			return err
		}
		var target *entry[V]
		for e := head; e != nil; e = e.next {
			if e.key == key {
				target = e
				break
			}
		}

		n := m.newEntry(key, value)
		if target == nil {
			// fresh key: prepend, nothing is replaced
			n.next = head
			if b.CompareAndSwap(head, n) {
				m.size.Add(1)
				return nil
			}
			m.pool.Put(n)
			continue
		}

		n.next = target.next
		newHead, replaced := m.clonePrefix(head, target, n)
		if b.CompareAndSwap(head, newHead) {
			for _, old := range replaced {
				h.Retire(old, m.recycle)
			}
			h.Retire(target, m.recycle)
			return nil
		}
		m.discard(newHead, target.next)
	}
}

// Delete removes the entry under key and reports whether it existed.
func (m *Map[V]) Delete(h *eras.Handle, key string) (bool, error) {
	b := m.bucket(key)
	g := h.Guard()
	defer g.Reset()
	for {
		head, err := b.Acquire(g)
		if err != nil {
			return false, err
		}
		var target *entry[V]
		for e := head; e != nil; e = e.next {
			if e.key == key {
				target = e
				break
			}
		}
		if target == nil {
			return false, nil
		}

		newHead, replaced := m.clonePrefix(head, target, target.next)
		if b.CompareAndSwap(head, newHead) {
			for _, old := range replaced {
				h.Retire(old, m.recycle)
			}
			h.Retire(target, m.recycle)
			m.size.Add(-1)
			return true, nil
		}
		m.discard(newHead, target.next)
	}
}

// Range invokes fn for every entry until fn returns false. Each bucket is
// traversed under one guard; entries observed are a consistent snapshot
// per bucket, not across buckets.
func (m *Map[V]) Range(h *eras.Handle, fn func(key string, value V) bool) error {
	g := h.Guard()
	defer g.Reset()
	for i := range m.buckets {
		head, err := m.buckets[i].Acquire(g)
		if err != nil {
			return err
		}
		for e := head; e != nil; e = e.next {
			if !fn(e.key, e.value) {
				return nil
			}
		}
		g.Reset()
	}
	return nil
}

func (m *Map[V]) newEntry(key string, value V) *entry[V] {
	n := m.pool.Get()
	m.domain.Init(n)
	n.key = key
	n.value = value
	return n
}

// clonePrefix copies the chain from head up to (excluding) target and
// points the copied prefix at tail, returning the new head and the
// replaced originals. With target == head it returns tail and no
// replacements.
func (m *Map[V]) clonePrefix(head, target, tail *entry[V]) (*entry[V], []*entry[V]) {
	if head == target {
		return tail, nil
	}
	var replaced []*entry[V]
	newHead := m.newEntry(head.key, head.value)
	replaced = append(replaced, head)
	last := newHead
	for e := head.next; e != target; e = e.next {
		c := m.newEntry(e.key, e.value)
		replaced = append(replaced, e)
		last.next = c
		last = c
	}
	last.next = tail
	return newHead, replaced
}

// recycle is the deleter bound at retirement; it returns reclaimed
// entries to the pool.
func (m *Map[V]) recycle(obj eras.Reclaimable) {
	m.pool.Put(obj.(*entry[V]))
}

// discard returns never-published clones to the pool after a failed CAS.
// stop is the first node of the shared live suffix; the walk must not
// cross into it.
func (m *Map[V]) discard(newHead, stop *entry[V]) {
	for e := newHead; e != nil && e != stop; {
		next := e.next
		m.pool.Put(e)
		e = next
	}
}
