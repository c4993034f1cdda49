package session

import (
	"testing"
	"time"

	"Moulinette/api/inventory/engine"
)

func TestCachePutGet(t *testing.T) {
	c := NewCache(time.Minute)
	stats := engine.Stats{TotalRows: 3, DistinctProducts: 2, DistinctLots: 3}
	c.Put(7, engine.DepotConforme, stats)

	e, ok := c.Get(7)
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if e.DepotType != engine.DepotConforme {
		t.Errorf("depot = %s, want Conforme", e.DepotType)
	}
	if e.Stats != stats {
		t.Errorf("stats = %+v, want %+v", e.Stats, stats)
	}
	if _, ok := c.Get(8); ok {
		t.Error("unexpected hit for an unknown session")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(time.Millisecond)
	c.Put(1, engine.DepotConforme, engine.Stats{})
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get(1); ok {
		t.Error("expected the entry to have expired")
	}
}

func TestCacheDelete(t *testing.T) {
	c := NewCache(time.Minute)
	c.Put(1, engine.DepotConforme, engine.Stats{})
	c.Delete(1)
	if _, ok := c.Get(1); ok {
		t.Error("expected the entry to be gone")
	}
}

func TestCacheCleanupExpired(t *testing.T) {
	c := NewCache(time.Millisecond)
	c.Put(1, engine.DepotConforme, engine.Stats{})
	c.Put(2, engine.DepotNonConforme, engine.Stats{})
	time.Sleep(5 * time.Millisecond)
	c.CleanupExpired()
	c.mu.Lock()
	n := len(c.entries)
	c.mu.Unlock()
	if n != 0 {
		t.Errorf("entries after cleanup = %d, want 0", n)
	}
}
