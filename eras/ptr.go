package eras

import (
	"sync/atomic"
	"unsafe"
)

// Ptr is an atomic pointer slot for reclaimable nodes. Every externally
// visible mutable reference to a reclaimable node must live in a Ptr so
// readers can couple the load with era publication.
type Ptr[T any] struct {
	v atomic.Pointer[T]
}

// Load returns the current value without protection. The result must not
// be dereferenced unless it is otherwise known to be safe.
func (p *Ptr[T]) Load() *T { return p.v.Load() }

// Store publishes a new value.
func (p *Ptr[T]) Store(x *T) { p.v.Store(x) }

// CompareAndSwap atomically replaces old with new.
func (p *Ptr[T]) CompareAndSwap(old, new *T) bool { return p.v.CompareAndSwap(old, new) }

// acquireTestHook, when non-nil, runs between the first era-clock read
// and the slot publication. Tests use it to force a preemption into the
// window the confirm loop must close.
var acquireTestHook func()

// Acquire snapshots the slot under era protection: publish the current
// era, load the pointer, and confirm the era clock has not advanced
// across the load. A moved clock means a retirement may have raced the
// publication, so the new era is republished and the load repeated.
// Clock stability guarantees the published era lies inside the returned
// node's construction/retirement interval even if the node's memory was
// recycled between the clock read and the publication; confirming the
// pointer instead would miss exactly that reuse. A nil snapshot leaves
// the guard empty without publishing.
//
// Under a static strategy Acquire fails with ErrSlotsExhausted when the
// guard cannot bind a slot. The retry loop is unbounded in theory; it
// only repeats while retirements keep advancing the clock.
func (p *Ptr[T]) Acquire(g *Guard) (*T, error) {
	if p.v.Load() == nil {
		g.Reset()
		return nil, nil
	}
	if err := g.ensureSlot(); err != nil {
		return nil, err
	}
	e := g.handle.domain.clock.current()
	if acquireTestHook != nil {
		acquireTestHook()
	}
	for {
		g.slot.era.Store(e)
		cur := p.v.Load()
		if cur == nil {
			g.Reset()
			return nil, nil
		}
		e2 := g.handle.domain.clock.current()
		if e2 == e {
			g.held = unsafe.Pointer(cur)
			return cur, nil
		}
		e = e2
	}
}

// AcquireIfEqual is Acquire restricted to a previously observed value:
// it succeeds only while the slot still holds expected, and otherwise
// leaves the guard empty without publishing. On success the guard
// protects expected exactly as after Acquire, including the era
// confirmation across the validating load.
func (p *Ptr[T]) AcquireIfEqual(g *Guard, expected *T) (bool, error) {
	if p.v.Load() != expected {
		g.Reset()
		return false, nil
	}
	if expected == nil {
		g.Reset()
		return true, nil
	}
	if err := g.ensureSlot(); err != nil {
		return false, err
	}
	e := g.handle.domain.clock.current()
	if acquireTestHook != nil {
		acquireTestHook()
	}
	for {
		g.slot.era.Store(e)
		if p.v.Load() != expected {
			g.Reset()
			return false, nil
		}
		e2 := g.handle.domain.clock.current()
		if e2 == e {
			g.held = unsafe.Pointer(expected)
			return true, nil
		}
		e = e2
	}
}
