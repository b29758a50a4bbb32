// Package zonecache keeps recently decoded zone files in memory.
//
// Entries are keyed by the BLAKE3 digest of the file image, so a zone file
// replaced on disk is decoded afresh while identical files share an entry.
package zonecache

import (
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/zeebo/blake3"

	"github.com/ngrash/go-zdump/tzif"
)

// DefaultMaxEntries is the capacity used when New is given a non-positive
// size.
const DefaultMaxEntries = 64

// Key identifies a file image.
type Key [32]byte

// KeyOf returns the key of the file image b.
func KeyOf(b []byte) Key {
	return blake3.Sum256(b)
}

// Stats counts cache lookups.
type Stats struct {
	Hits, Misses int
}

// Cache is an LRU cache of decoded zone files. It is safe for concurrent
// use.
type Cache struct {
	mu    sync.Mutex
	lru   *lru.Cache
	stats Stats
}

// New returns a cache holding at most maxEntries decoded files.
func New(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{lru: lru.New(maxEntries)}
}

// Decode returns the decoded form of b, decoding it only if no entry with
// the same digest is cached. Files that fail to decode are not cached.
func (c *Cache) Decode(b []byte) (tzif.Data, error) {
	k := KeyOf(b)
	c.mu.Lock()
	if v, ok := c.lru.Get(k); ok {
		c.stats.Hits++
		c.mu.Unlock()
		return v.(tzif.Data), nil
	}
	c.stats.Misses++
	c.mu.Unlock()

	d, err := tzif.Decode(b)
	if err != nil {
		return tzif.Data{}, err
	}

	c.mu.Lock()
	c.lru.Add(k, d)
	c.mu.Unlock()
	return d, nil
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns the lookup counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Purge drops all entries.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Clear()
}
