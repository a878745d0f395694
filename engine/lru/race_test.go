package lru

import (
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"
)

// A mixed workload of concurrent Put/Get/Remove on random keys.
// Should pass under `go test -race` without detector reports.
func TestLRU_Race_MixedWorkload(t *testing.T) {
	c := New[string, []byte](8192, nil)

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
					c.Remove(k)
				case 1, 2:
					c.Put(k, []byte("x"))
				default:
					c.Get(k)
				}
			}
		}(w)
	}
	wg.Wait()
}
