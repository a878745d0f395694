// Package counters provides a lock-free engine.Metrics implementation for
// callers who want cheap counters without standing up Prometheus — each
// counter lives on its own cache line so concurrent engines (e.g. shards)
// updating the same Counters instance don't false-share.
package counters

import (
	"github.com/vkazantsev/evictcache/engine"
	"github.com/vkazantsev/evictcache/internal/util"
)

// Counters accumulates hit/miss/eviction/size signals from one or more
// engine instances (typically the shards of a wrapper/shard.Shard) without
// taking a lock. Safe for concurrent use by design.
type Counters struct {
	hits    util.PaddedAtomicInt64
	misses  util.PaddedAtomicInt64
	evicts  util.PaddedAtomicInt64
	entries util.PaddedAtomicInt64
}

// Hit increments the hit counter.
func (c *Counters) Hit() { c.hits.Add(1) }

// Miss increments the miss counter.
func (c *Counters) Miss() { c.misses.Add(1) }

// Evict increments the eviction counter regardless of reason; callers
// needing a per-reason breakdown should use metrics/prom instead.
func (c *Counters) Evict(engine.EvictReason) { c.evicts.Add(1) }

// Size records the last-observed resident entry count. When several engine
// instances share one Counters (sharding), this is last-writer-wins, not a
// sum — use Shard.Len for an exact total.
func (c *Counters) Size(entries int) { c.entries.Store(int64(entries)) }

// Snapshot is a point-in-time read of every counter.
type Snapshot struct {
	Hits, Misses, Evictions, Entries int64
}

// Load takes a consistent-enough snapshot (each field read independently;
// under concurrent writers this is not atomic across fields).
func (c *Counters) Load() Snapshot {
	return Snapshot{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evicts.Load(),
		Entries:   c.entries.Load(),
	}
}

var _ engine.Metrics = (*Counters)(nil)
