package eras

import "sync/atomic"

// Domain is one instance of the reclamation scheme: the era clock, the
// registry of control blocks, the allocation strategy, and diagnostic
// counters. All data structures whose nodes may reference each other must
// share a Domain; independent structures may use independent Domains.
type Domain struct {
	strategy Strategy
	clock    eraClock
	registry registry

	// activeEras approximates the number of allocated hazard slots across
	// live handles. It feeds the scan threshold only; staleness shifts
	// when scans trigger, never whether reclamation is safe.
	activeEras atomic.Int64

	allocated atomic.Uint64
	retired   atomic.Uint64
	reclaimed atomic.Uint64
	scans     atomic.Uint64
}

// New creates a Domain using the given allocation strategy.
func New(s Strategy) *Domain {
	return &Domain{strategy: s.normalized()}
}

// Init stamps a node with the current era and registers it with the
// allocation tracker. Call it after constructing a node and again each
// time a pooled node is reused, before the node becomes reachable.
func (d *Domain) Init(obj Reclaimable) {
	n := obj.reclaimNode()
	n.self = obj
	n.deleter = nil
	n.next = nil
	n.constructionEra = d.clock.current()
	n.retirementEra = 0
	d.allocated.Add(1)
}

// ActiveEras reports the approximate number of allocated hazard slots.
func (d *Domain) ActiveEras() int { return int(d.activeEras.Load()) }

// Era reports the current value of the era clock.
func (d *Domain) Era() uint64 { return d.clock.current() }

func (d *Domain) retiredThreshold() int {
	return d.strategy.A*int(d.activeEras.Load()) + d.strategy.B
}
