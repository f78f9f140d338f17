package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value   any
	expires time.Time
}

// Cache is an in-process cache provider with per-entry TTLs. Expired entries
// are dropped lazily on read.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewCache creates an empty in-memory cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// SetClock overrides the clock used for expiry checks.
func (c *Cache) SetClock(clock func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if clock != nil {
		c.now = clock
	}
}

// Get returns the stored value, or nil when the key is absent or expired.
func (c *Cache) Get(_ context.Context, key string) (any, error) {
	c.mu.RLock()
	item, ok := c.entries[key]
	now := c.now()
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !item.expires.IsZero() && item.expires.Before(now) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	return item.value, nil
}

// Set stores a value under the key. A zero or negative TTL keeps the entry
// until it is deleted or the cache is cleared.
func (c *Cache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := entry{value: value}
	if ttl > 0 {
		item.expires = c.now().Add(ttl)
	}
	c.entries[key] = item
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// Clear drops every entry.
func (c *Cache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	return nil
}

// Len reports the number of live entries, expired ones included until they
// are read.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
