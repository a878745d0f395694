package shard

import (
	"testing"

	"github.com/vkazantsev/evictcache/engine"
	"github.com/vkazantsev/evictcache/engine/lru"
)

func newLRUShardFactory() func(capacity int) engine.Cache[string, int] {
	return func(capacity int) engine.Cache[string, int] {
		return lru.New[string, int](capacity, nil)
	}
}

func TestShard_RoutesAndFindsKeys(t *testing.T) {
	t.Parallel()

	s := New[string, int](64, 4, newLRUShardFactory())
	for i := 0; i < 20; i++ {
		s.Put(string(rune('a'+i)), i)
	}
	for i := 0; i < 20; i++ {
		k := string(rune('a' + i))
		if v, ok := s.Get(k); !ok || v != i {
			t.Fatalf("get(%q) = %d, %v; want %d, true", k, v, ok, i)
		}
	}
}

func TestShard_DefaultShardCount(t *testing.T) {
	t.Parallel()

	s := New[string, int](64, 0, newLRUShardFactory())
	if s.ShardCount() < 1 {
		t.Fatalf("ShardCount() = %d, want >= 1", s.ShardCount())
	}
}

func TestShard_CapacityRounding(t *testing.T) {
	t.Parallel()

	// 10 total / 4 shards = ceil(2.5) = 3 per shard -> 12 total, which is
	// >= 10 and < 10 + (4-1).
	s := New[string, int](10, 4, newLRUShardFactory())
	if s.Cap() < 10 || s.Cap() > 10+3 {
		t.Fatalf("Cap() = %d, want within [10, 13]", s.Cap())
	}
}

func TestShard_RemoveAndLen(t *testing.T) {
	t.Parallel()

	s := New[string, int](64, 4, newLRUShardFactory())
	s.Put("a", 1)
	s.Put("b", 2)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if !s.Remove("a") {
		t.Fatal("Remove a must return true")
	}
	if s.Remove("a") {
		t.Fatal("second Remove a must return false")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after Remove", s.Len())
	}
}

func TestShard_GetOrZero(t *testing.T) {
	t.Parallel()

	s := New[string, int](64, 4, newLRUShardFactory())
	if got := s.GetOrZero("missing"); got != 0 {
		t.Fatalf("GetOrZero on miss = %d, want 0", got)
	}
	s.Put("a", 42)
	if got := s.GetOrZero("a"); got != 42 {
		t.Fatalf("GetOrZero on hit = %d, want 42", got)
	}
}

// No cross-shard operation should ever see a key routed to more than one
// shard: eviction pressure in one shard must never affect another.
func TestShard_IsolatedEvictionPressure(t *testing.T) {
	t.Parallel()

	s := New[string, int](2, 2, newLRUShardFactory()) // 1 entry/shard
	s.Put("k1", 1)
	s.Put("k2", 2)
	// Overfill only whichever shard "overflow" lands on; the other
	// shard's key must be unaffected if it's a different shard.
	s.Put("overflow", 99)

	present := 0
	for _, k := range []string{"k1", "k2", "overflow"} {
		if _, ok := s.Get(k); ok {
			present++
		}
	}
	if present < 2 {
		t.Fatalf("expected at least 2 of 3 keys to survive across independent shards, got %d", present)
	}
}
