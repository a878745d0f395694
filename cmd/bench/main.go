// Command bench runs a synthetic read/write workload against one engine and
// exposes a Prometheus metrics endpoint plus an optional pprof endpoint.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vkazantsev/evictcache/engine"
	"github.com/vkazantsev/evictcache/engine/arc"
	"github.com/vkazantsev/evictcache/engine/lfu"
	"github.com/vkazantsev/evictcache/engine/lru"
	"github.com/vkazantsev/evictcache/metrics/prom"
)

func main() {
	var (
		policy   = flag.String("policy", "lru", "eviction policy: lru | lfu | arc")
		capacity = flag.Int("cap", 100_000, "cache capacity (entries)")
		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 5*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")
		keys     = flag.Int("keys", 1_000_000, "keyspace size")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := prom.New(nil, "evictcache", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	opt := &engine.Options[string, string]{Metrics: metrics}

	var c engine.Cache[string, string]
	switch *policy {
	case "lru":
		c = lru.New[string, string](*capacity, opt)
	case "lfu":
		c = lfu.New[string, string](*capacity, 0, opt)
	case "arc":
		c = arc.New[string, string](*capacity, 0, opt)
	default:
		log.Fatalf("unknown policy %q (use lru, lfu, or arc)", *policy)
	}

	// Preload half capacity so reads have something to hit.
	for i := 0; i < *capacity/2; i++ {
		k := strconv.Itoa(i)
		c.Put(k, k)
	}

	var reads, writes, hits, misses uint64
	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(*workers)
	for w := 0; w < *workers; w++ {
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
				}
				k := strconv.Itoa(rnd.Intn(*keys))
				if rnd.Intn(100) < *readPct {
					atomic.AddUint64(&reads, 1)
					if _, ok := c.Get(k); ok {
						atomic.AddUint64(&hits, 1)
					} else {
						atomic.AddUint64(&misses, 1)
					}
				} else {
					atomic.AddUint64(&writes, 1)
					c.Put(k, k)
				}
			}
		}(*seed + int64(w))
	}

	start := time.Now()
	time.Sleep(*duration)
	close(stop)
	wg.Wait()
	elapsed := time.Since(start)

	readsN := atomic.LoadUint64(&reads)
	writesN := atomic.LoadUint64(&writes)
	hitsN := atomic.LoadUint64(&hits)
	missesN := atomic.LoadUint64(&misses)
	ops := readsN + writesN

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	fmt.Printf("policy=%s cap=%d workers=%d elapsed=%v\n", *policy, *capacity, *workers, elapsed)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, writesN)
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%  Len()=%d\n", hitsN, missesN, hitRate, c.Len())
	fmt.Printf("metrics served at %s/metrics\n", *metricsAddr)
}
