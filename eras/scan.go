package eras

// Scan runs a reclamation pass over the handle's retire list and returns
// the number of objects destroyed. Retire triggers scans automatically;
// calling Scan directly is only needed to drain promptly, e.g. in tests
// or shutdown paths.
func (h *Handle) Scan() int { return h.scan() }

// scan collects every published era from the registry, then partitions
// the retire list: a node is destroyed iff no published era falls inside
// its [constructionEra, retirementEra] interval (the upper bound is kept
// inclusive, which is conservative by at most one era). Survivors stay on
// the list for the next pass. The scan never blocks registration or new
// retirement.
func (h *Handle) scan() int {
	d := h.domain
	h.scratch = h.scratch[:0]
	// Inactive blocks are walked too: their slots read as sentinels, and
	// skipping them would turn a missed Reset into unsafe reclamation
	// instead of a leak.
	d.registry.forEach(func(b *controlBlock) {
		b.forEachEra(func(e uint64) {
			h.scratch = append(h.scratch, e)
		})
	})

	var keep *Node
	keepCount := 0
	reclaimedCount := 0
	n := h.retired
	h.retired = nil
	for n != nil {
		next := n.next
		if overlaps(h.scratch, n.constructionEra, n.retirementEra) {
			n.next = keep
			keep = n
			keepCount++
		} else {
			n.destroy()
			reclaimedCount++
		}
		n = next
	}
	h.retired, h.retiredCount = keep, keepCount

	d.scans.Add(1)
	d.reclaimed.Add(uint64(reclaimedCount))
	return reclaimedCount
}

// overlaps reports whether any published era lies within [c, r], meaning
// some Guard may have acquired the object during its reachable lifetime.
func overlaps(published []uint64, c, r uint64) bool {
	for _, e := range published {
		if e >= c && e <= r {
			return true
		}
	}
	return false
}
