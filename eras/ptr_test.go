package eras

import "testing"

// A node can go through a full unlink/retire/reclaim/reuse cycle between
// a reader's era-clock read and its slot publication, coming back at the
// same address with a later construction era. The confirm loop must
// notice the clock movement and republish; the era finally held has to
// lie inside the reused node's interval, or a later scan would free the
// node under the live guard.
func TestAcquireCoversRecycledNode(t *testing.T) {
	d := New(Static(2))
	mutator := d.Handle()
	reader := d.Handle()
	defer mutator.Close()
	defer reader.Close()

	n := &testNode{value: 1}
	d.Init(n)
	var p Ptr[testNode]
	p.Store(n)

	deleted := 0
	acquireTestHook = func() {
		acquireTestHook = nil
		p.Store(nil)
		mutator.Retire(n, func(Reclaimable) { deleted++ })
		if got := mutator.Scan(); got != 1 {
			t.Fatalf("recycle scan = %d, want 1", got)
		}
		d.Init(n)
		p.Store(n)
	}
	defer func() { acquireTestHook = nil }()

	g := reader.Guard()
	got, err := p.Acquire(g)
	if err != nil {
		t.Fatal(err)
	}
	if got != n {
		t.Fatalf("acquire returned %p, want the reused node %p", got, n)
	}
	if e := g.slot.era.Load(); e < n.constructionEra {
		t.Fatalf("published era %d below construction era %d", e, n.constructionEra)
	}

	// retired again while the guard lives, the reused node must survive
	p.Store(nil)
	mutator.Retire(n, func(Reclaimable) { deleted++ })
	if got := mutator.Scan(); got != 0 || deleted != 1 {
		t.Fatalf("scan freed the guarded node (reclaimed=%d deleted=%d)", got, deleted)
	}
	g.Reset()
	if got := mutator.Scan(); got != 1 || deleted != 2 {
		t.Fatalf("scan after reset = %d, deleted = %d; want 1 and 2", got, deleted)
	}
}

// Same interleaving through AcquireIfEqual: recycling preserves the
// address, so the equality check still passes and only the era
// confirmation can catch the moved interval.
func TestAcquireIfEqualCoversRecycledNode(t *testing.T) {
	d := New(Static(2))
	mutator := d.Handle()
	reader := d.Handle()
	defer mutator.Close()
	defer reader.Close()

	n := &testNode{value: 1}
	d.Init(n)
	var p Ptr[testNode]
	p.Store(n)

	acquireTestHook = func() {
		acquireTestHook = nil
		p.Store(nil)
		mutator.Retire(n, func(Reclaimable) {})
		if got := mutator.Scan(); got != 1 {
			t.Fatalf("recycle scan = %d, want 1", got)
		}
		d.Init(n)
		p.Store(n)
	}
	defer func() { acquireTestHook = nil }()

	g := reader.Guard()
	ok, err := p.AcquireIfEqual(g, n)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("slot still holds the expected address, acquire must succeed")
	}
	if e := g.slot.era.Load(); e < n.constructionEra {
		t.Fatalf("published era %d below construction era %d", e, n.constructionEra)
	}

	p.Store(nil)
	deleted := 0
	mutator.Retire(n, func(Reclaimable) { deleted++ })
	if got := mutator.Scan(); got != 0 || deleted != 0 {
		t.Fatalf("scan freed the guarded node (reclaimed=%d deleted=%d)", got, deleted)
	}
	g.Reset()
	if got := mutator.Scan(); got != 1 || deleted != 1 {
		t.Fatalf("scan after reset = %d, deleted = %d; want 1 and 1", got, deleted)
	}
}
