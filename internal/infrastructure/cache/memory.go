package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nutriswap/backend/internal/domain"
)

// MemoryConfig holds configuration for the in-memory cache
type MemoryConfig struct {
	// CleanupInterval is how often expired entries are purged. Default 10m.
	CleanupInterval time.Duration
	// MaxEntries bounds the cache size; 0 means unbounded. When full, the entry
	// closest to expiry is evicted.
	MaxEntries int
}

// entry is a stored value with its expiry; zero expiresAt never expires
type entry struct {
	value     interface{}
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is a thread-safe in-memory domain.CacheRepository with TTL support
type MemoryCache struct {
	data       map[string]entry
	maxEntries int
	mutex      sync.RWMutex

	stop     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

var _ domain.CacheRepository = (*MemoryCache)(nil)

// NewMemoryCache creates an in-memory cache and starts its cleanup loop.
// Call Close to stop the loop.
func NewMemoryCache(config MemoryConfig) *MemoryCache {
	interval := config.CleanupInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	c := &MemoryCache{
		data:       make(map[string]entry),
		maxEntries: config.MaxEntries,
		stop:       make(chan struct{}),
		now:        time.Now,
	}
	go c.cleanupLoop(interval)
	return c
}

// Get retrieves a value. Values come back in their JSON-decoded form, the same
// shape a networked cache would return.
func (c *MemoryCache) Get(ctx context.Context, key string) (interface{}, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, ok := c.data[key]
	if !ok || e.expired(c.now()) {
		return nil, domain.ErrCacheMiss
	}
	return e.value, nil
}

// Set stores a value for ttl; ttl <= 0 stores it without expiry
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}

	e := entry{value: decoded}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.data[key]; !exists && c.maxEntries > 0 && len(c.data) >= c.maxEntries {
		c.evictLocked()
	}
	c.data[key] = e
	return nil
}

// Delete removes a value
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Exists reports whether key holds an unexpired value
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, ok := c.data[key]
	return ok && !e.expired(c.now()), nil
}

// Size returns the number of stored entries, expired ones included until purged
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes every entry
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]entry)
}

// Close stops the cleanup loop and drops every entry. It is safe to call more than once.
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	c.Clear()
	return nil
}

// evictLocked drops expired entries, or failing that the one expiring soonest.
// Entries without expiry go last. Caller holds the write lock.
func (c *MemoryCache) evictLocked() {
	if c.purgeLocked() > 0 {
		return
	}

	var victim string
	var victimExpiry time.Time
	found := false
	for key, e := range c.data {
		switch {
		case !found:
		case e.expiresAt.IsZero():
			continue
		case victimExpiry.IsZero() || e.expiresAt.Before(victimExpiry):
		default:
			continue
		}
		victim, victimExpiry, found = key, e.expiresAt, true
	}
	if found {
		delete(c.data, victim)
	}
}

// purgeLocked removes expired entries and returns how many were removed
func (c *MemoryCache) purgeLocked() int {
	now := c.now()
	removed := 0
	for key, e := range c.data {
		if e.expired(now) {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

func (c *MemoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			c.purgeLocked()
			c.mutex.Unlock()
		case <-c.stop:
			return
		}
	}
}
