package eras

import "sync/atomic"

// slot is a single published hazard era. The era value is written only by
// the owning goroutine's Guard and read by any scanning goroutine; the
// used flag is owner-only. Padded so neighbouring slots do not share a
// cache line.
type slot struct {
	era  atomic.Uint64
	used bool
	_    [55]byte
}

// slotChunk is a fixed group of slots. Control blocks chain chunks so the
// dynamic strategy can grow capacity while scanners walk the chain.
type slotChunk struct {
	slots []slot
	next  atomic.Pointer[slotChunk]
}

func newSlotChunk(n int) *slotChunk {
	c := &slotChunk{slots: make([]slot, n)}
	for i := range c.slots {
		c.slots[i].era.Store(noEra)
	}
	return c
}
