package eras

// Strategy fixes the per-handle hazard slot capacity and the linear
// threshold that decides how large a retire list may grow before a
// reclamation scan runs. The threshold is A*activeEras + B, where
// activeEras is the domain-wide count of allocated hazard slots.
type Strategy struct {
	// Slots is K, the number of hazard slots per control block chunk.
	// Under a static strategy it is also the hard per-handle capacity.
	Slots int

	// A and B are the scan threshold coefficients.
	A int
	B int

	// Dynamic selects the growable control-block variant: a handle that
	// needs more concurrent Guards than currently allocated grows its
	// block instead of failing with ErrSlotsExhausted.
	Dynamic bool
}

// Static returns a fixed-capacity strategy with k slots per handle.
func Static(k int) Strategy { return Strategy{Slots: k, A: 2, B: 100} }

// Dynamic returns a growable strategy starting at k slots per handle.
func Dynamic(k int) Strategy { return Strategy{Slots: k, A: 2, B: 100, Dynamic: true} }

// Default is a static strategy with three slots per handle.
func Default() Strategy { return Static(3) }

func (s Strategy) normalized() Strategy {
	if s.Slots <= 0 {
		s.Slots = 3
	}
	if s.A <= 0 {
		s.A = 2
	}
	if s.B <= 0 {
		s.B = 100
	}
	return s
}
