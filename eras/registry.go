package eras

import "sync/atomic"

// registry is the global list of all control blocks ever created for a
// domain. Registration is a lock-free prepend; iteration is a wait-free
// walk over the chain starting from a head snapshot. Blocks registered
// after the snapshot cannot yet protect anything a scanning handle has
// retired, because retired nodes were unlinked before retirement and are
// unreachable to fresh acquires.
type registry struct {
	head atomic.Pointer[controlBlock]
}

// acquire claims an inactive block, or registers a new one with k slots
// when none is free. The claimant inherits the block's grown capacity and
// any retire list the previous owner abandoned.
func (r *registry) acquire(k int) *controlBlock {
	for b := r.head.Load(); b != nil; b = b.next {
		if b.active.CompareAndSwap(false, true) {
			b.resetSlots()
			return b
		}
	}
	b := newControlBlock(k)
	b.active.Store(true)
	for {
		head := r.head.Load()
		b.next = head
		if r.head.CompareAndSwap(head, b) {
			return b
		}
	}
}

// forEach visits every registered block, active or not.
func (r *registry) forEach(fn func(*controlBlock)) {
	for b := r.head.Load(); b != nil; b = b.next {
		fn(b)
	}
}
