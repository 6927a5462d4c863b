package rrule

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// cacheEntry holds one cached expansion result.
type cacheEntry struct {
	result     []time.Time
	expiresAt  time.Time
	accessedAt time.Time
}

// ExpansionCache caches RuleSet.Expand results, keyed by rule identity and
// query range, so a busy calendar view re-rendering the same window
// doesn't re-run the pipeline on every request.
type ExpansionCache struct {
	entries         map[string]*cacheEntry
	mutex           sync.RWMutex
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

// CacheConfig configures an ExpansionCache.
type CacheConfig struct {
	TTL             time.Duration
	MaxEntries      int
	CleanupInterval time.Duration
}

// DefaultCacheConfig holds defaults for a short-lived, moderately-sized
// request cache.
var DefaultCacheConfig = CacheConfig{
	TTL:             15 * time.Minute,
	MaxEntries:      1000,
	CleanupInterval: 5 * time.Minute,
}

// NewExpansionCache creates a cache and starts its background cleanup loop.
// Callers must call Close when done to stop the goroutine.
func NewExpansionCache(config CacheConfig) *ExpansionCache {
	c := &ExpansionCache{
		entries:         make(map[string]*cacheEntry),
		ttl:             config.TTL,
		maxEntries:      config.MaxEntries,
		cleanupInterval: config.CleanupInterval,
		stopCleanup:     make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

func cacheKey(id uuid.UUID, rangeStart, rangeEnd time.Time) string {
	return fmt.Sprintf("%s|%s|%s", id, rangeStart.UTC().Format(time.RFC3339Nano), rangeEnd.UTC().Format(time.RFC3339Nano))
}

// Get returns the cached expansion for (id, rangeStart, rangeEnd), if any
// and not yet expired.
func (c *ExpansionCache) Get(id uuid.UUID, rangeStart, rangeEnd time.Time) ([]time.Time, bool) {
	key := cacheKey(id, rangeStart, rangeEnd)

	c.mutex.RLock()
	entry, ok := c.entries[key]
	c.mutex.RUnlock()
	if !ok {
		return nil, false
	}

	now := time.Now()
	if now.After(entry.expiresAt) {
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()
		return nil, false
	}

	c.mutex.Lock()
	entry.accessedAt = now
	c.mutex.Unlock()
	return entry.result, true
}

// Set stores an expansion result for (id, rangeStart, rangeEnd).
func (c *ExpansionCache) Set(id uuid.UUID, rangeStart, rangeEnd time.Time, result []time.Time) {
	key := cacheKey(id, rangeStart, rangeEnd)
	now := time.Now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = &cacheEntry{result: result, expiresAt: now.Add(c.ttl), accessedAt: now}
	if len(c.entries) > c.maxEntries {
		c.evictLocked()
	}
}

// evictLocked removes expired entries, then the least-recently-accessed
// survivors until the cache is back under maxEntries. Callers must hold
// c.mutex.
func (c *ExpansionCache) evictLocked() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	if len(c.entries) <= c.maxEntries {
		return
	}

	type keyAccess struct {
		key        string
		accessedAt time.Time
	}
	ordered := make([]keyAccess, 0, len(c.entries))
	for key, entry := range c.entries {
		ordered = append(ordered, keyAccess{key: key, accessedAt: entry.accessedAt})
	}
	for i := 0; i < len(ordered)-1; i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[i].accessedAt.After(ordered[j].accessedAt) {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}

	toRemove := len(c.entries) - c.maxEntries
	for i := 0; i < toRemove && i < len(ordered); i++ {
		delete(c.entries, ordered[i].key)
	}
}

func (c *ExpansionCache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			c.evictLocked()
			c.mutex.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}

// Close stops the cleanup goroutine and drops all entries.
func (c *ExpansionCache) Close() {
	close(c.stopCleanup)
	c.mutex.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mutex.Unlock()
}

// CachedExpand wraps RuleSet.Expand with cache.Get/Set, so repeated queries
// for the same range against the same rule identity skip the pipeline.
func CachedExpand(cache *ExpansionCache, rs *RuleSet, rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	if cached, ok := cache.Get(rs.ID, rangeStart, rangeEnd); ok {
		return cached, nil
	}
	result, err := rs.Expand(rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	cache.Set(rs.ID, rangeStart, rangeEnd, result)
	return result, nil
}
