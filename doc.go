// Package evictcache provides generic, in-memory caches with pluggable
// eviction policies: LRU (recency), LFU (frequency, with aging), and ARC
// (adaptive recency/frequency balancing), plus two composable wrappers:
// LRU-K (admission filtering) and Shard (hash-partitioned concurrency).
//
// # Design
//
//   - Concurrency: every engine holds a single mutex covering its whole
//     state; every public operation acquires it for the operation's full
//     duration. There is no internal blocking or I/O. Use wrapper/shard to
//     split a cache across N independently-locked engines when contention
//     on one mutex becomes the bottleneck.
//
//   - Policies: engine/lru, engine/lfu, and engine/arc each implement
//     engine.Cache. All three can be swapped at a call site without
//     changing any other code.
//
//   - LRU-K: wrapper/lruk filters cold, one-off keys out of a main cache
//     by requiring K sightings (tracked in a bounded auxiliary history)
//     before a key is admitted.
//
//   - Sharding: wrapper/shard routes each key by hash to one of N
//     independent engines, built by a caller-supplied factory so any
//     engine (or wrapper) can be the unit of sharding.
//
//   - GetOrLoad: wrapper/loader decorates any engine.Cache with read-through
//     loading that coalesces concurrent misses for the same key using the
//     module's internal singleflight group.
//
//   - Metrics: engine.Options.Metrics receives Hit/Miss/Evict/Size signals.
//     NoopMetrics is the default; metrics/prom adapts to Prometheus and
//     metrics/counters offers lock-free counters for simpler needs.
//
//   - Callbacks: engine.Options.OnEvict(k, v, reason) runs for every
//     eviction, whether policy-driven or an explicit Remove.
//
// # Basic usage
//
//	c := evictcache.NewLRU[string, []byte](10_000, nil)
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//		_ = v
//	}
package evictcache
