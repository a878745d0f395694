// Package shard composes N independently-locked engines into one cache,
// routing each key to exactly one shard by hash. This trades a single
// global mutex for N smaller ones, cutting contention under concurrent load
// at the cost of no cross-shard atomicity.
package shard

import (
	"github.com/vkazantsev/evictcache/engine"
	"github.com/vkazantsev/evictcache/internal/util"
)

// Shard wraps N engines of equal per-shard capacity. All operations hash
// the key and route to shard hash(k) mod N; there are no cross-shard
// operations, so each shard's locking is entirely its own.
type Shard[K comparable, V any] struct {
	shards []engine.Cache[K, V]
	cap    int
}

// New builds a Shard wrapper with n shards, each constructed by calling
// newEngine(perShardCapacity). n <= 0 defaults to util.ReasonableShardCount.
// Per-shard capacity is ceil(totalCapacity/n), so the effective total
// capacity may exceed totalCapacity by up to n-1 due to rounding.
func New[K comparable, V any](totalCapacity, n int, newEngine func(capacity int) engine.Cache[K, V]) *Shard[K, V] {
	if n <= 0 {
		n = util.ReasonableShardCount()
	}
	perShard := ceilDiv(totalCapacity, n)

	shards := make([]engine.Cache[K, V], n)
	for i := range shards {
		shards[i] = newEngine(perShard)
	}
	return &Shard[K, V]{shards: shards, cap: perShard * n}
}

// Put routes key to its shard and inserts or updates it there.
func (s *Shard[K, V]) Put(key K, value V) {
	s.shardFor(key).Put(key, value)
}

// Get routes key to its shard and reports whether it is live there.
func (s *Shard[K, V]) Get(key K) (V, bool) {
	return s.shardFor(key).Get(key)
}

// GetOrZero returns the value for key, or V's zero value on a miss.
func (s *Shard[K, V]) GetOrZero(key K) V {
	return s.shardFor(key).GetOrZero(key)
}

// Remove routes key to its shard and deletes it if present there.
func (s *Shard[K, V]) Remove(key K) bool {
	return s.shardFor(key).Remove(key)
}

// Len reports the total number of resident entries across all shards.
func (s *Shard[K, V]) Len() int {
	n := 0
	for _, sh := range s.shards {
		n += sh.Len()
	}
	return n
}

// Cap reports the effective total capacity (per-shard capacity × shard count).
func (s *Shard[K, V]) Cap() int {
	return s.cap
}

// ShardCount reports the number of underlying shards.
func (s *Shard[K, V]) ShardCount() int {
	return len(s.shards)
}

var _ engine.Cache[string, int] = (*Shard[string, int])(nil)

func (s *Shard[K, V]) shardFor(key K) engine.Cache[K, V] {
	idx := util.ShardIndex(util.Hash(key), len(s.shards))
	return s.shards[idx]
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}
