package eras

import "errors"

var (
	// ErrSlotsExhausted is returned by Guard acquisition under a static
	// strategy when all hazard slots of the handle's control block are
	// already bound to live Guards.
	ErrSlotsExhausted = errors.New("eras: all hazard era slots in use")

	// ErrClosedHandle is returned when a Guard is used after its Handle
	// has been closed.
	ErrClosedHandle = errors.New("eras: handle is closed")
)
