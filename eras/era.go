package eras

import "sync/atomic"

// noEra marks a hazard slot that currently protects nothing.
const noEra = ^uint64(0)

// eraClock is the monotonically increasing counter all retirements are
// ordered by. It only ever advances by atomic increment.
type eraClock struct {
	value atomic.Uint64
}

// current reads the clock.
func (c *eraClock) current() uint64 { return c.value.Load() }

// advance increments the clock and returns the new value. Concurrent
// callers each observe a distinct value.
func (c *eraClock) advance() uint64 { return c.value.Add(1) }
