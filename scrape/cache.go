package scrape

import (
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched result page is served from the
// cache before it is fetched again.
const DefaultCacheTTL = 10 * time.Minute

// Cache stores fetched result pages per URL for a bounded time.
// Entries are only replaced by a successful fetch, so a flaky upstream
// never wipes the last good page.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	html      string
	fetchedAt time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock replaces the time source, for deterministic expiry in
// tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a Cache with the given TTL. A non-positive TTL
// falls back to DefaultCacheTTL.
func NewCache(ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	c := &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the cached page for the URL if it is younger than the
// TTL. An expired entry is a miss but stays stored until overwritten.
func (c *Cache) Get(url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[url]
	if !ok {
		return "", false
	}
	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		return "", false
	}

	return entry.html, true
}

// Put stores a freshly fetched page for the URL.
func (c *Cache) Put(url, html string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[url] = cacheEntry{html: html, fetchedAt: c.now()}
}

// Flush drops all entries, forcing the next lookup to fetch.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}
