package evictcache

import (
	"github.com/vkazantsev/evictcache/engine"
	"github.com/vkazantsev/evictcache/engine/arc"
	"github.com/vkazantsev/evictcache/engine/lfu"
	"github.com/vkazantsev/evictcache/engine/lru"
	"github.com/vkazantsev/evictcache/wrapper/loader"
	"github.com/vkazantsev/evictcache/wrapper/lruk"
	"github.com/vkazantsev/evictcache/wrapper/shard"
)

// Cache is the interface implemented by every engine and wrapper in this
// module; re-exported so callers don't need to import the engine package
// just to name the type.
type Cache[K comparable, V any] = engine.Cache[K, V]

// Options configures ambient behavior shared by every engine and wrapper.
type Options[K comparable, V any] = engine.Options[K, V]

// EvictReason explains why an entry left a cache.
type EvictReason = engine.EvictReason

const (
	EvictPolicy   = engine.EvictPolicy
	EvictExplicit = engine.EvictExplicit
)

// Metrics is the observability interface an Options.Metrics value must
// implement.
type Metrics = engine.Metrics

// NewLRU constructs a recency-eviction cache of the given capacity.
func NewLRU[K comparable, V any](capacity int, opt *Options[K, V]) *lru.LRU[K, V] {
	return lru.New[K, V](capacity, opt)
}

// NewLFU constructs a frequency-eviction cache. maxAvg <= 0 uses
// lfu.DefaultMaxAvg.
func NewLFU[K comparable, V any](capacity, maxAvg int, opt *Options[K, V]) *lfu.LFU[K, V] {
	return lfu.New[K, V](capacity, maxAvg, opt)
}

// NewARC constructs an adaptive recency/frequency cache. transformThreshold
// <= 0 uses arc.DefaultTransformThreshold.
func NewARC[K comparable, V any](capacity, transformThreshold int, opt *Options[K, V]) *arc.ARC[K, V] {
	return arc.New[K, V](capacity, transformThreshold, opt)
}

// NewLRUK constructs an admission-filtering wrapper around a main LRU
// cache. k <= 0 uses lruk.DefaultK.
func NewLRUK[K comparable, V any](mainCapacity, historyCapacity, k int, opt *Options[K, V]) *lruk.LRUK[K, V] {
	return lruk.New[K, V](mainCapacity, historyCapacity, k, opt)
}

// NewSharded builds a hash-partitioned cache of n independent engines, each
// constructed by newEngine with its share of totalCapacity. n <= 0 picks a
// shard count from hardware parallelism.
func NewSharded[K comparable, V any](totalCapacity, n int, newEngine func(capacity int) Cache[K, V]) *shard.Shard[K, V] {
	return shard.New[K, V](totalCapacity, n, newEngine)
}

// NewLoader wraps cache with read-through loading that coalesces concurrent
// misses for the same key.
func NewLoader[K comparable, V any](cache Cache[K, V], fn loader.LoadFunc[K, V]) *loader.Loader[K, V] {
	return loader.New[K, V](cache, fn)
}
