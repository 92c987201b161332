package infra

import (
	"strings"
	"sync"
	"time"
)

// DefaultMaxCacheEntries bounds cache growth for long-lived server
// processes. List endpoints in particular can produce large payloads.
const DefaultMaxCacheEntries = 1000

type cacheEntry struct {
	value      any
	expiresAt  time.Time
	accessedAt time.Time
}

// Cache is a TTL cache with LRU eviction, used to shield read-heavy
// tools (catalog listings, cluster state) from repeated identical API
// calls. Expired entries are dropped lazily on access and eviction
// happens synchronously on insert, so there is no background goroutine
// to manage.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	maxEntries int
}

// NewCache creates a cache holding at most maxEntries values.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxCacheEntries
	}
	return &Cache{
		entries:    make(map[string]*cacheEntry),
		maxEntries: maxEntries,
	}
}

// Get returns the cached value for key if present and not expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	now := time.Now()
	if now.After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	e.accessedAt = now
	return e.value, true
}

// Set stores value under key for the given TTL, evicting the least
// recently used entries when the cache is full.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked(len(c.entries) - c.maxEntries + 1)
	}
	c.entries[key] = &cacheEntry{
		value:      value,
		expiresAt:  now.Add(ttl),
		accessedAt: now,
	}
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// DeletePrefix removes every entry whose key starts with prefix.
// Mutating tools use this to invalidate the list caches for the
// resource they just changed.
func (c *Cache) DeletePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Size returns the current number of entries, including any that have
// expired but not yet been dropped.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked drops expired entries first, then the least recently
// accessed, until at least n entries have been removed. Caller holds
// c.mu.
func (c *Cache) evictLocked(n int) {
	now := time.Now()
	for key, e := range c.entries {
		if n <= 0 {
			return
		}
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			n--
		}
	}
	for n > 0 && len(c.entries) > 0 {
		var oldestKey string
		var oldest time.Time
		for key, e := range c.entries {
			if oldestKey == "" || e.accessedAt.Before(oldest) {
				oldestKey = key
				oldest = e.accessedAt
			}
		}
		delete(c.entries, oldestKey)
		n--
	}
}
