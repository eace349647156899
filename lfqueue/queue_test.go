package lfqueue

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"reclaim/eras"
)

func TestQueueFIFO(t *testing.T) {
	d := eras.New(eras.Default())
	h := d.Handle()
	defer h.Close()
	q := New[int](d)

	if _, ok, _ := q.Dequeue(h); ok {
		t.Fatal("fresh queue should be empty")
	}
	for i := 1; i <= 5; i++ {
		if err := q.Enqueue(h, i); err != nil {
			t.Fatal(err)
		}
	}
	for want := 1; want <= 5; want++ {
		v, ok, err := q.Dequeue(h)
		if err != nil {
			t.Fatal(err)
		}
		if !ok || v != want {
			t.Fatalf("dequeue = (%d, %v), want (%d, true)", v, ok, want)
		}
	}
	if _, ok, _ := q.Dequeue(h); ok {
		t.Error("drained queue should be empty")
	}
}

func TestQueueNeedsTwoSlots(t *testing.T) {
	d := eras.New(eras.Static(1))
	h := d.Handle()
	defer h.Close()
	q := New[int](d)

	if err := q.Enqueue(h, 1); err != nil {
		t.Fatalf("enqueue needs one slot: %v", err)
	}
	if _, _, err := q.Dequeue(h); !errors.Is(err, eras.ErrSlotsExhausted) {
		t.Fatalf("dequeue with K=1 err = %v, want ErrSlotsExhausted", err)
	}
}

func TestQueueConcurrent(t *testing.T) {
	d := eras.New(eras.Default())
	q := New[uint64](d)

	const producers = 4
	const consumers = 4
	const perProducer = 5000

	var enqueued, dequeued atomic.Uint64
	var done atomic.Bool
	var wg, cwg sync.WaitGroup

	for w := 0; w < producers; w++ {
		wg.Add(1)
		go func(base uint64) {
			defer wg.Done()
			h := d.Handle()
			defer h.Close()
			for i := uint64(1); i <= perProducer; i++ {
				if err := q.Enqueue(h, base+i); err != nil {
					t.Errorf("enqueue: %v", err)
					return
				}
				enqueued.Add(base + i)
			}
		}(uint64(w) * perProducer)
	}
	for w := 0; w < consumers; w++ {
		cwg.Add(1)
		go func() {
			defer cwg.Done()
			h := d.Handle()
			defer h.Close()
			for {
				v, ok, err := q.Dequeue(h)
				if err != nil {
					t.Errorf("dequeue: %v", err)
					return
				}
				if ok {
					dequeued.Add(v)
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

	if enqueued.Load() != dequeued.Load() {
		t.Errorf("checksum mismatch: enqueued %d, dequeued %d", enqueued.Load(), dequeued.Load())
	}

	handles := make([]*eras.Handle, producers+consumers)
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
