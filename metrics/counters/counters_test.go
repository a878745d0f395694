package counters

import (
	"testing"

	"github.com/vkazantsev/evictcache/engine"
	"github.com/vkazantsev/evictcache/engine/lru"
)

func TestCounters_AccumulateAcrossEngine(t *testing.T) {
	t.Parallel()

	var c Counters
	l := lru.New[string, int](2, &engine.Options[string, int]{Metrics: &c})

	l.Put("a", 1)
	l.Put("b", 2)
	l.Get("a")       // hit
	l.Get("missing") // miss
	l.Put("c", 3)    // evicts one entry

	snap := c.Load()
	if snap.Hits != 1 {
		t.Fatalf("Hits = %d, want 1", snap.Hits)
	}
	if snap.Misses != 1 {
		t.Fatalf("Misses = %d, want 1", snap.Misses)
	}
	if snap.Evictions != 1 {
		t.Fatalf("Evictions = %d, want 1", snap.Evictions)
	}
	if snap.Entries != 2 {
		t.Fatalf("Entries = %d, want 2", snap.Entries)
	}
}
