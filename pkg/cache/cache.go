package cache

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ollo-ai/ollo/pkg/models"
)

// Default bounds for the response cache.
const (
	DefaultTTL        = time.Hour
	DefaultMaxEntries = 1000
)

type entry struct {
	response    *models.GenerateResponse
	createdAt   time.Time
	expiresAt   time.Time
	accessCount int64
}

// ResponseCache is a bounded, expiring in-memory response store.
// When the entry count exceeds maxEntries, the least-accessed entries
// are evicted in a batch until the count drops to maxEntries/2.
type ResponseCache struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	ttl        time.Duration
	maxEntries int
	store      *FileStore

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a ResponseCache with the given TTL and size bound.
// Non-positive arguments fall back to the defaults.
func New(ttl time.Duration, maxEntries int) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &ResponseCache{
		entries:    make(map[string]*entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// NewPersistent creates a ResponseCache that writes every entry through
// to a one-file-per-entry JSON store under dir.
func NewPersistent(ttl time.Duration, maxEntries int, dir string) (*ResponseCache, error) {
	store, err := NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	c := New(ttl, maxEntries)
	c.store = store
	return c, nil
}

// Get returns the cached response for key, incrementing its access count.
// An expired entry is removed and reported as a miss.
func (c *ResponseCache) Get(key string) (*models.GenerateResponse, bool) {
	if key == "" {
		c.misses.Add(1)
		return nil, false
	}

	now := time.Now()

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if now.Before(e.expiresAt) {
			e.accessCount++
			c.mu.Unlock()
			c.hits.Add(1)
			return e.response, true
		}
		delete(c.entries, key)
	}
	c.mu.Unlock()

	// Fall back to the disk store, promoting live entries back into memory.
	if c.store != nil {
		if de := c.store.Load(key); de != nil {
			if now.Before(de.ExpiresAt) {
				c.mu.Lock()
				c.entries[key] = &entry{
					response:    de.Response,
					createdAt:   de.CreatedAt,
					expiresAt:   de.ExpiresAt,
					accessCount: 1,
				}
				c.mu.Unlock()
				c.hits.Add(1)
				return de.Response, true
			}
			c.store.Remove(key)
		}
	}

	c.misses.Add(1)
	return nil, false
}

// Put inserts or overwrites the entry for key, then sweeps expired
// entries and enforces the size bound.
func (c *ResponseCache) Put(key string, resp *models.GenerateResponse) {
	if key == "" || resp == nil {
		return
	}

	now := time.Now()
	e := &entry{
		response:    resp,
		createdAt:   now,
		expiresAt:   now.Add(c.ttl),
		accessCount: 1,
	}

	c.mu.Lock()
	c.entries[key] = e
	c.sweepLocked(now)
	evicted := c.evictLocked()
	c.mu.Unlock()

	if c.store != nil {
		c.store.Save(key, &models.DiskEntry{
			Key:       key,
			Response:  resp,
			CreatedAt: e.createdAt,
			ExpiresAt: e.expiresAt,
		})
		for _, k := range evicted {
			c.store.Remove(k)
		}
	}
}

// sweepLocked removes all expired entries. Caller holds the write lock.
func (c *ResponseCache) sweepLocked(now time.Time) {
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// evictLocked enforces the size bound: when the count exceeds maxEntries,
// entries are removed in ascending access-count order (ties broken by
// oldest first) until the count drops to maxEntries/2. Returns the
// evicted keys. Caller holds the write lock.
func (c *ResponseCache) evictLocked() []string {
	if len(c.entries) <= c.maxEntries {
		return nil
	}

	type candidate struct {
		key string
		e   *entry
	}
	ranked := make([]candidate, 0, len(c.entries))
	for k, e := range c.entries {
		ranked = append(ranked, candidate{k, e})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].e.accessCount != ranked[j].e.accessCount {
			return ranked[i].e.accessCount < ranked[j].e.accessCount
		}
		return ranked[i].e.createdAt.Before(ranked[j].e.createdAt)
	})

	target := c.maxEntries / 2
	var evicted []string
	for _, cand := range ranked {
		if len(c.entries) <= target {
			break
		}
		delete(c.entries, cand.key)
		evicted = append(evicted, cand.key)
	}
	return evicted
}

// SweepExpired removes expired entries from memory and, when
// persistence is on, from disk. Returns the number removed from memory.
func (c *ResponseCache) SweepExpired() int {
	now := time.Now()

	c.mu.Lock()
	before := len(c.entries)
	c.sweepLocked(now)
	removed := before - len(c.entries)
	c.mu.Unlock()

	if c.store != nil {
		c.store.SweepExpired(now)
	}
	return removed
}

// Clear removes all entries, including the disk store when persistence is on.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()

	if c.store != nil {
		c.store.RemoveAll()
	}
}

// Stats scans the cache and reports entry and access counts.
func (c *ResponseCache) Stats() models.CacheStats {
	now := time.Now()

	c.mu.RLock()
	stats := models.CacheStats{Total: len(c.entries)}
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			stats.Valid++
		} else {
			stats.Expired++
		}
		stats.TotalAccesses += e.accessCount
	}
	c.mu.RUnlock()

	stats.Hits = c.hits.Load()
	stats.Misses = c.misses.Load()
	return stats
}
