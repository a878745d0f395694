package arc

import (
	"testing"

	"github.com/vkazantsev/evictcache/engine"
)

func TestARC_BasicPutGet(t *testing.T) {
	t.Parallel()

	c := New[string, int](4, 0, nil)
	c.Put("a", 1)
	c.Put("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("get(a) = %d, %v; want 1, true", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Fatalf("get(b) = %d, %v; want 2, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("missing key must miss")
	}
}

func TestARC_ZeroCapacity(t *testing.T) {
	t.Parallel()

	c := New[string, int](0, 0, nil)
	c.Put("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Fatal("capacity 0 must make Put a no-op")
	}
	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", c.Len())
	}
}

func TestARC_PromotionOnRepeatedHits(t *testing.T) {
	t.Parallel()

	c := New[string, int](4, 2, nil) // threshold 2
	c.Put("a", 1)

	// The first access already promotes: hits starts at 1 on admission and
	// reaches the threshold 2 on this get.
	c.Get("a")
	// a should now live in T2 and no longer in T1's live list.
	if _, ok := c.t1.live["a"]; ok {
		t.Fatal("a should have been promoted out of T1 after reaching threshold")
	}
	if n, ok := c.t2.live["a"]; !ok || n.val != 1 {
		t.Fatal("a should be live in T2 after promotion")
	}
}

func TestARC_Idempotence(t *testing.T) {
	t.Parallel()

	a := New[string, int](4, 0, nil)
	a.Put("k", 1)
	a.Put("k", 1)

	b := New[string, int](4, 0, nil)
	b.Put("k", 1)

	if a.Len() != b.Len() {
		t.Fatalf("Len mismatch: %d vs %d", a.Len(), b.Len())
	}
	va, _ := a.Get("k")
	vb, _ := b.Get("k")
	if va != vb {
		t.Fatalf("value mismatch: %v vs %v", va, vb)
	}
}

func TestARC_Remove(t *testing.T) {
	t.Parallel()

	c := New[string, int](4, 0, nil)
	c.Put("a", 1)
	if !c.Remove("a") {
		t.Fatal("Remove a must return true")
	}
	if c.Remove("a") {
		t.Fatal("second Remove a must return false")
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("a must be absent after Remove")
	}
}

func TestARC_RemoveGhostedKey(t *testing.T) {
	t.Parallel()

	c := New[int, int](2, 0, nil)
	// Fill T1 past capacity so 1 is demoted from T1 live into T1 ghost (B1).
	c.Put(1, 1)
	c.Put(2, 2)
	c.Put(3, 3)

	if _, ok := c.t1.ghost[1]; !ok {
		t.Fatal("1 must be a B1 ghost before Remove")
	}

	if !c.Remove(1) {
		t.Fatal("Remove of a ghosted key must return true")
	}
	if _, ok := c.t1.ghost[1]; ok {
		t.Fatal("1 must be purged from B1 after Remove")
	}
	if _, ok := c.t2.ghost[1]; ok {
		t.Fatal("1 must not linger in B2 after Remove")
	}

	// A ghost hit on 1 would normally rebalance capacity toward T1; since it
	// was purged, re-inserting it must behave like a fresh key, not a ghost
	// hit.
	t1CapBefore := c.t1.cap
	t2CapBefore := c.t2.cap
	c.Put(1, 11)
	if c.t1.cap != t1CapBefore || c.t2.cap != t2CapBefore {
		t.Fatal("re-inserting a purged ghost must not trigger a ghost-hit capacity rebalance")
	}
}

func TestARC_EvictionBudget(t *testing.T) {
	t.Parallel()

	const capacity = 4
	const n = 50
	var evicted int
	c := New[int, int](capacity, 0, &engine.Options[int, int]{
		OnEvict: func(_ int, _ int, _ engine.EvictReason) { evicted++ },
	})
	for i := 0; i < n; i++ {
		c.Put(i, i)
	}
	if c.Len() > 2*capacity {
		t.Fatalf("Len() = %d, exceeds 2x capacity budget %d", c.Len(), 2*capacity)
	}
	if evicted == 0 {
		t.Fatal("expected at least one eviction under sustained overflow")
	}
}

func TestARC_GhostHitRebalancesCapacity(t *testing.T) {
	t.Parallel()

	c := New[int, int](2, 0, nil)
	// Fill T1 past capacity so something is demoted to B1 (T1's ghost).
	c.Put(1, 1)
	c.Put(2, 2)
	c.Put(3, 3) // evicts 1 from T1 live into T1 ghost (B1)

	t1CapBefore := c.t1.cap
	t2CapBefore := c.t2.cap

	// Re-inserting 1 should hit B1 and trigger the capacity rebalance.
	c.Put(1, 11)

	if c.t1.cap <= t1CapBefore && c.t2.cap >= t2CapBefore {
		t.Fatalf("expected capacity to shift toward T1 on ghost hit: t1 %d->%d, t2 %d->%d",
			t1CapBefore, c.t1.cap, t2CapBefore, c.t2.cap)
	}
}

func TestARC_GetOrZero(t *testing.T) {
	t.Parallel()

	c := New[string, int](2, 0, nil)
	if got := c.GetOrZero("missing"); got != 0 {
		t.Fatalf("GetOrZero on miss = %d, want 0", got)
	}
	c.Put("a", 42)
	if got := c.GetOrZero("a"); got != 42 {
		t.Fatalf("GetOrZero on hit = %d, want 42", got)
	}
}
