package lfstack

import (
	"sync"
	"sync/atomic"
	"testing"

	"reclaim/eras"
)

func TestStackLIFO(t *testing.T) {
	d := eras.New(eras.Default())
	h := d.Handle()
	defer h.Close()
	s := New[int](d)

	for i := 1; i <= 3; i++ {
		s.Push(i)
	}
	if v, ok, _ := s.Peek(h); !ok || v != 3 {
		t.Fatalf("peek = (%d, %v), want (3, true)", v, ok)
	}
	for want := 3; want >= 1; want-- {
		v, ok, err := s.Pop(h)
		if err != nil {
			t.Fatal(err)
		}
		if !ok || v != want {
			t.Fatalf("pop = (%d, %v), want (%d, true)", v, ok, want)
		}
	}
	if _, ok, _ := s.Pop(h); ok {
		t.Error("pop on empty stack should report not ok")
	}
}

func TestStackConcurrent(t *testing.T) {
	d := eras.New(eras.Default())
	s := New[uint64](d)

	const producers = 4
	const consumers = 4
	const perProducer = 5000

	var pushed, popped atomic.Uint64
	var done atomic.Bool
	var wg sync.WaitGroup

	for w := 0; w < producers; w++ {
		wg.Add(1)
		go func(base uint64) {
			defer wg.Done()
			for i := uint64(0); i < perProducer; i++ {
				s.Push(base + i)
				pushed.Add(base + i)
			}
		}(uint64(w) * perProducer)
	}

	var cwg sync.WaitGroup
	for w := 0; w < consumers; w++ {
		cwg.Add(1)
		go func() {
			defer cwg.Done()
			h := d.Handle()
			defer h.Close()
			for {
				v, ok, err := s.Pop(h)
				if err != nil {
					t.Errorf("pop: %v", err)
					return
				}
				if ok {
					popped.Add(v)
					continue
				}
				if done.Load() {
					return
				}
			}
		}()
	}

	wg.Wait()
	done.Store(true)
	cwg.Wait()

	if pushed.Load() != popped.Load() {
		t.Errorf("checksum mismatch: pushed %d, popped %d", pushed.Load(), popped.Load())
	}

	// no guards remain; draining every parked block must reclaim all nodes
	handles := make([]*eras.Handle, consumers+1)
	for i := range handles {
		handles[i] = d.Handle()
		handles[i].Scan()
	}
	for _, h := range handles {
		h.Close()
	}
	if st := d.Stats(); st.Retired != st.Reclaimed {
		t.Errorf("retired %d != reclaimed %d after drain", st.Retired, st.Reclaimed)
	}
}

func TestStackStaticSlotError(t *testing.T) {
	d := eras.New(eras.Static(1))
	h := d.Handle()
	defer h.Close()
	s := New[int](d)
	s.Push(1)

	g := h.Guard()
	var p eras.Ptr[int]
	x := 0
	p.Store(&x)
	// occupy the handle's only slot, then Pop must fail cleanly
	if _, err := p.Acquire(g); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Pop(h); err == nil {
		t.Error("pop with exhausted slots should surface an error")
	}
	g.Reset()
	if v, ok, err := s.Pop(h); err != nil || !ok || v != 1 {
		t.Errorf("pop after releasing slot = (%d, %v, %v)", v, ok, err)
	}
}
