package eras

// Handle is a goroutine's participation ticket: it owns a control block's
// hazard slots and the goroutine's private retire list. Create one per
// worker goroutine with Domain.Handle and release it with Close. A Handle
// must not be used concurrently.
type Handle struct {
	domain *Domain
	block  *controlBlock

	retired      *Node
	retiredCount int

	scratch []uint64 // published-era buffer reused across scans
	closed  bool
}

// Handle claims (or lazily creates and registers) a control block and
// binds it to a new Handle.
func (d *Domain) Handle() *Handle {
	b := d.registry.acquire(d.strategy.Slots)
	h := &Handle{domain: d, block: b}
	h.retired, h.retiredCount = b.orphans, b.orphanCount
	b.orphans, b.orphanCount = nil, 0
	d.activeEras.Add(int64(b.capacity))
	return h
}

// Guard returns an empty Guard bound to this handle. The Guard binds a
// hazard slot on first acquisition and releases it on Reset.
func (h *Handle) Guard() *Guard { return &Guard{handle: h} }

// Retire stamps the object's retirement era, appends it to the handle's
// retire list with the given deleter, and runs a scan once the list
// exceeds the strategy threshold. The caller must hold the unique
// reference under which the object was unlinked; retiring an object twice
// is a contract violation.
func (h *Handle) Retire(obj Reclaimable, d Deleter) {
	n := obj.reclaimNode()
	n.deleter = d
	n.retirementEra = h.domain.clock.advance()
	n.next = h.retired
	h.retired = n
	h.retiredCount++
	h.domain.retired.Add(1)
	if h.retiredCount > h.domain.retiredThreshold() {
		h.scan()
	}
}

// Pending reports the number of retired objects awaiting reclamation on
// this handle.
func (h *Handle) Pending() int { return h.retiredCount }

// Close runs a final scan, parks any still-unreclaimable nodes on the
// control block for the next claimant to adopt, and deactivates the
// block. The block's storage is retained so concurrent scanners can keep
// reading its slots. All Guards of this handle must be Reset before Close.
func (h *Handle) Close() {
	if h.closed {
		return
	}
	h.closed = true
	if h.retired != nil {
		h.scan()
	}
	h.block.orphans, h.block.orphanCount = h.retired, h.retiredCount
	h.retired, h.retiredCount = nil, 0
	h.domain.activeEras.Add(-int64(h.block.capacity))
	h.block.active.Store(false)
	h.block = nil
}
