// Package session caches per-session extract statistics so the resume
// and status endpoints do not re-parse the stored mask file on every
// call. Entries expire; the database remains the source of truth.
package session

import (
	"sync"
	"time"

	"Moulinette/api/inventory/engine"
)

type Entry struct {
	SessionID int64
	DepotType engine.DepotType
	Stats     engine.Stats
	expiresAt time.Time
}

type Cache struct {
	mu      sync.Mutex
	entries map[int64]*Entry
	ttl     time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[int64]*Entry),
		ttl:     ttl,
	}
}

func (c *Cache) Put(sessionID int64, depot engine.DepotType, stats engine.Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[sessionID] = &Entry{
		SessionID: sessionID,
		DepotType: depot,
		Stats:     stats,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *Cache) Get(sessionID int64) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[sessionID]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, sessionID)
		return nil, false
	}
	return e, true
}

func (c *Cache) Delete(sessionID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sessionID)
}

// CleanupExpired drops stale entries; called from the monitor loop.
func (c *Cache) CleanupExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for id, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, id)
		}
	}
}
