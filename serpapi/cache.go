package serpapi

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"sync"
	"time"

	"github.com/Kurehiro/gpt-oss"
	"github.com/cespare/xxhash/v2"
)

// DefaultTTL is how long cached search results stay valid.
const DefaultTTL = time.Hour

// CacheKey derives the cache key for a search from its query signature.
func CacheKey(query string, count int, typ gptoss.SearchType) string {
	h := xxhash.Sum64String(fmt.Sprintf("%s_%d_%s", query, count, typ))
	return strconv.FormatUint(h, 16)
}

// Ensure MemoryCache implements gptoss.SearchCache at compile time.
var _ gptoss.SearchCache = (*MemoryCache)(nil)

// MemoryCache is a process-lifetime search cache with time-based
// invalidation. Entries are copied on read and write so callers can adjust
// result scores without corrupting cached state.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	results  []gptoss.SearchResult
	storedAt time.Time
}

// NewMemoryCache creates a MemoryCache with the given TTL.
// A non-positive TTL falls back to DefaultTTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the cached results for key while their TTL holds.
func (c *MemoryCache) Get(_ context.Context, key string) ([]gptoss.SearchResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if time.Since(entry.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false, nil
	}
	return copyResults(entry.results), true, nil
}

// Put stores results under key, replacing any previous entry.
func (c *MemoryCache) Put(_ context.Context, key string, results []gptoss.SearchResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{results: copyResults(results), storedAt: time.Now()}
	return nil
}

// Expire drops all entries past their TTL.
func (c *MemoryCache) Expire(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if time.Since(entry.storedAt) >= c.ttl {
			delete(c.entries, key)
		}
	}
	return nil
}

// copyResults deep-copies results, including the Meta maps, so a cached
// entry never shares mutable state with its callers.
func copyResults(results []gptoss.SearchResult) []gptoss.SearchResult {
	out := make([]gptoss.SearchResult, len(results))
	copy(out, results)
	for i := range out {
		out[i].Meta = maps.Clone(out[i].Meta)
	}
	return out
}
