package eras

import "unsafe"

// Guard binds at most one hazard slot to at most one protected pointer.
// While a Guard holds a non-nil pointer the pointed-to object will not be
// physically destroyed. Guards are acquired through Ptr.Acquire and
// Ptr.AcquireIfEqual and released with Reset; they belong to a single
// Handle and must not be used concurrently.
//
// Go's move semantics for Guards are plain pointer hand-off: passing a
// *Guard transfers it without touching the slot. Copy semantics are
// provided by Clone, which re-publishes the same era on a second slot.
type Guard struct {
	handle *Handle
	slot   *slot
	held   unsafe.Pointer
}

// ensureSlot binds a hazard slot to the guard, growing the control block
// under a dynamic strategy.
func (g *Guard) ensureSlot() error {
	if g.slot != nil {
		return nil
	}
	h := g.handle
	if h == nil || h.closed {
		return ErrClosedHandle
	}
	if s := h.block.grab(); s != nil {
		g.slot = s
		return nil
	}
	if !h.domain.strategy.Dynamic {
		return ErrSlotsExhausted
	}
	g.slot = h.block.grow(h.domain.strategy.Slots)
	h.domain.activeEras.Add(int64(h.domain.strategy.Slots))
	return nil
}

// Empty reports whether the guard currently protects nothing.
func (g *Guard) Empty() bool { return g.held == nil }

// Reset releases the guard's slot and clears the held pointer. It never
// runs deletion logic and is idempotent.
func (g *Guard) Reset() {
	if g.slot != nil {
		g.slot.era.Store(noEra)
		g.slot.used = false
		g.slot = nil
	}
	g.held = nil
}

// Reclaim retires the object the guard protects: the object receives a
// fresh retirement era, joins the handle's retire list with the given
// deleter, and the guard is reset. The caller must hold the unique
// logical-owner reference under which the object was unlinked from its
// structure; obj must be the pointer this guard acquired.
func (g *Guard) Reclaim(obj Reclaimable, d Deleter) {
	h := g.handle
	g.Reset()
	h.Retire(obj, d)
}

// Clone acquires a second slot and re-publishes the guard's era and
// pointer on it, yielding an independent protection of the same object.
// Cloning an empty guard yields an empty guard.
func (g *Guard) Clone() (*Guard, error) {
	c := &Guard{handle: g.handle}
	if g.slot == nil || g.held == nil {
		return c, nil
	}
	if err := c.ensureSlot(); err != nil {
		return nil, err
	}
	c.slot.era.Store(g.slot.era.Load())
	c.held = g.held
	return c, nil
}
