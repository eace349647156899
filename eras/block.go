package eras

import "sync/atomic"

// controlBlock owns one handle's hazard slots. Blocks are registered into
// the domain registry exactly once and never unlinked or freed: a handle
// that closes marks its block inactive, and a later handle may claim the
// block again. Scanners may therefore read a block's slots at any time,
// including after the owning goroutine has exited.
type controlBlock struct {
	next   *controlBlock // registry link, immutable once published
	active atomic.Bool

	// first is the inline chunk of K slots; the dynamic strategy appends
	// further chunks through the chain.
	first slotChunk

	// Owner-only state below. Ownership transfers through the active CAS.
	capacity    int
	orphans     *Node // retire list left behind by the previous owner
	orphanCount int
}

func newControlBlock(k int) *controlBlock {
	b := &controlBlock{capacity: k}
	b.first.slots = make([]slot, k)
	for i := range b.first.slots {
		b.first.slots[i].era.Store(noEra)
	}
	return b
}

// grab finds an unused slot and marks it in use. Owner-only.
func (b *controlBlock) grab() *slot {
	for c := &b.first; c != nil; c = c.next.Load() {
		for i := range c.slots {
			s := &c.slots[i]
			if !s.used {
				s.used = true
				return s
			}
		}
	}
	return nil
}

// grow appends a chunk of n slots and returns the first one, marked in
// use. Owner-only; publishing the chunk pointer atomically keeps the
// chain walkable by concurrent scanners.
func (b *controlBlock) grow(n int) *slot {
	c := newSlotChunk(n)
	c.slots[0].used = true
	last := &b.first
	for nx := last.next.Load(); nx != nil; nx = last.next.Load() {
		last = nx
	}
	last.next.Store(c)
	b.capacity += n
	return &c.slots[0]
}

// forEachEra invokes fn for every currently published era. Safe from any
// goroutine.
func (b *controlBlock) forEachEra(fn func(uint64)) {
	for c := &b.first; c != nil; c = c.next.Load() {
		for i := range c.slots {
			if e := c.slots[i].era.Load(); e != noEra {
				fn(e)
			}
		}
	}
}

// resetSlots clears slot occupancy for a freshly claimed block. Owner-only.
func (b *controlBlock) resetSlots() {
	for c := &b.first; c != nil; c = c.next.Load() {
		for i := range c.slots {
			c.slots[i].used = false
			c.slots[i].era.Store(noEra)
		}
	}
}
