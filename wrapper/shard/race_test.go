package shard

import (
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/vkazantsev/evictcache/engine"
	"github.com/vkazantsev/evictcache/engine/lru"
)

// A mixed workload of concurrent Put/Get/Remove across many shards.
// Should pass under `go test -race` without detector reports.
func TestShard_Race_MixedWorkload(t *testing.T) {
	s := New[string, []byte](8192, 32, func(capacity int) engine.Cache[string, []byte] {
		return lru.New[string, []byte](capacity, nil)
	})

	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 50_000
	deadline := time.Now().Add(200 * time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)*9973))
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				switch r.Intn(10) {
				case 0:
					s.Remove(k)
				case 1, 2:
					s.Put(k, []byte("x"))
				default:
					s.Get(k)
				}
			}
		}(w)
	}
	wg.Wait()
}
