package eras

// Stats is a point-in-time snapshot of a Domain's diagnostic counters.
// The counters have no effect on correctness; Pending is derived and may
// be momentarily inconsistent under concurrent retirement.
type Stats struct {
	Era        uint64 // current era clock value
	Allocated  uint64 // nodes stamped via Init
	Retired    uint64 // nodes handed to Retire/Reclaim
	Reclaimed  uint64 // deleters actually run
	Scans      uint64 // reclamation passes executed
	Pending    uint64 // retired but not yet reclaimed
	ActiveEras int    // allocated hazard slots across live handles
}

// Stats snapshots the domain counters.
func (d *Domain) Stats() Stats {
	retired := d.retired.Load()
	reclaimed := d.reclaimed.Load()
	var pending uint64
	if retired > reclaimed {
		pending = retired - reclaimed
	}
	return Stats{
		Era:        d.clock.current(),
		Allocated:  d.allocated.Load(),
		Retired:    retired,
		Reclaimed:  reclaimed,
		Scans:      d.scans.Load(),
		Pending:    pending,
		ActiveEras: int(d.activeEras.Load()),
	}
}
