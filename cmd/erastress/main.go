// erastress drives the hazard-eras reclamation scheme under a mixed
// concurrent workload and reports reclamation statistics. It is developer
// tooling: the library surface itself has no CLI.
package main

import (
	"flag"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reclaim/eras"
	"reclaim/lfmap"
	"reclaim/lfqueue"
	"reclaim/lfstack"
)

func main() {
	var (
		workers   = flag.Int("workers", 8, "worker goroutines")
		duration  = flag.Duration("duration", 10*time.Second, "run time")
		structure = flag.String("structure", "all", "stack|queue|map|all")
		dynamic   = flag.Bool("dynamic", false, "use the dynamic allocation strategy")
		slots     = flag.Int("slots", 3, "hazard slots per handle (K)")
		threshA   = flag.Int("a", 2, "scan threshold coefficient A")
		threshB   = flag.Int("b", 100, "scan threshold coefficient B")
		metrics   = flag.String("metrics", "", "serve prometheus metrics on this address")
	)
	flag.Parse()

	strategy := eras.Strategy{Slots: *slots, A: *threshA, B: *threshB, Dynamic: *dynamic}
	domain := eras.New(strategy)

	if *metrics != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(eras.NewCollector(domain))
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			log.Printf("metrics on %s/metrics", *metrics)
			if err := http.ListenAndServe(*metrics, mux); err != nil {
				log.Fatalf("metrics server failed: %v", err)
			}
		}()
	}

	// ---------------- Structures ----------------

	stack := lfstack.New[uint64](domain)
	queue := lfqueue.New[uint64](domain)
	kvmap := lfmap.New[uint64](domain, 256)

	runStack := *structure == "all" || *structure == "stack"
	runQueue := *structure == "all" || *structure == "queue"
	runMap := *structure == "all" || *structure == "map"

	// ---------------- Workers ----------------

	var ops atomic.Uint64
	deadline := time.Now().Add(*duration)
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			h := domain.Handle()
			defer h.Close()
			rng := rand.New(rand.NewSource(seed))
			keys := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
			for time.Now().Before(deadline) {
				for i := 0; i < 1024; i++ {
					n := rng.Uint64()
					switch {
					case runStack && n%7 < 3:
						if n%2 == 0 {
							stack.Push(n)
						} else if _, _, err := stack.Pop(h); err != nil {
							log.Fatalf("stack pop: %v", err)
						}
					case runQueue && n%7 < 5:
						if n%2 == 0 {
							if err := queue.Enqueue(h, n); err != nil {
								log.Fatalf("enqueue: %v", err)
							}
						} else if _, _, err := queue.Dequeue(h); err != nil {
							log.Fatalf("dequeue: %v", err)
						}
					case runMap:
						key := keys[n%uint64(len(keys))]
						switch n % 3 {
						case 0:
							if err := kvmap.Put(h, key, n); err != nil {
								log.Fatalf("map put: %v", err)
							}
						case 1:
							if _, _, err := kvmap.Get(h, key); err != nil {
								log.Fatalf("map get: %v", err)
							}
						default:
							if _, err := kvmap.Delete(h, key); err != nil {
								log.Fatalf("map delete: %v", err)
							}
						}
					}
					ops.Add(1)
				}
			}
			h.Scan()
		}(int64(w) + 1)
	}

	// ---------------- Progress ----------------

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for running := true; running; {
		select {
		case <-tick.C:
			s := domain.Stats()
			log.Printf("ops=%d era=%d retired=%d reclaimed=%d pending=%d scans=%d slots=%d",
				ops.Load(), s.Era, s.Retired, s.Reclaimed, s.Pending, s.Scans, s.ActiveEras)
		case <-done:
			running = false
		}
	}

	s := domain.Stats()
	log.Printf("final: ops=%d allocated=%d retired=%d reclaimed=%d pending=%d scans=%d",
		ops.Load(), s.Allocated, s.Retired, s.Reclaimed, s.Pending, s.Scans)
}
