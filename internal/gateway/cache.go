package gateway

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/questkeeper-app/questkeeper/internal/domain"
)

// CacheSchemaVersion stamps every cache entry. Bump it when the cached
// shape changes so stale entries self-invalidate on read.
const CacheSchemaVersion = "1.0"

type cachedCharacterEntry struct {
	Version   string           `json:"version"`
	Character domain.Character `json:"character"`
	CachedAt  time.Time        `json:"cached_at"`
}

// characterCache is the expirable LRU in front of character reads. Writes
// go through Set on every save, so within one process a Get after a save
// observes the saved snapshot until the TTL retires it.
type characterCache struct {
	lru *expirable.LRU[string, *cachedCharacterEntry]
}

func newCharacterCache(size int, ttl time.Duration) *characterCache {
	return &characterCache{
		lru: expirable.NewLRU[string, *cachedCharacterEntry](size, nil, ttl),
	}
}

// Get returns a cached character. Entries stamped with an old schema
// version are evicted and treated as misses. The returned copy owns its
// inventory slice.
func (c *characterCache) Get(userID string) (*domain.Character, bool) {
	entry, found := c.lru.Get(userID)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(userID)
		return nil, false
	}

	out := entry.Character.Clone()
	return &out, true
}

// Set clones the character into the cache under the current schema
// version, so later caller mutations never reach the cached entry.
func (c *characterCache) Set(userID string, character domain.Character) {
	entry := &cachedCharacterEntry{
		Version:   CacheSchemaVersion,
		Character: character.Clone(),
		CachedAt:  time.Now(),
	}
	c.lru.Add(userID, entry)
}
