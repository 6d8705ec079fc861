package user

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/habitquest/habitquest-go/internal/domain"
)

// cachedProfileEntry wraps a profile with version metadata for cache invalidation
type cachedProfileEntry struct {
	Version  string
	Profile  domain.Profile
	CachedAt time.Time
}

// profileCache is a short-lived read cache for GetProfile. Writers invalidate
// the entry after commit.
type profileCache struct {
	lru *expirable.LRU[string, *cachedProfileEntry]
}

func newProfileCache(size int, ttl time.Duration) *profileCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &profileCache{
		lru: expirable.NewLRU[string, *cachedProfileEntry](size, nil, ttl),
	}
}

// Get returns a copy of the cached profile. Entries written under another
// schema version are dropped.
func (c *profileCache) Get(userID string) (*domain.Profile, bool) {
	entry, found := c.lru.Get(userID)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(userID)
		return nil, false
	}
	p := entry.Profile
	p.UnlockedSkills = append([]string(nil), entry.Profile.UnlockedSkills...)
	return &p, true
}

func (c *profileCache) Set(p *domain.Profile) {
	c.lru.Add(p.UserID, &cachedProfileEntry{
		Version:  CacheSchemaVersion,
		Profile:  *p,
		CachedAt: time.Now(),
	})
}

func (c *profileCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}

func (c *profileCache) Len() int {
	return c.lru.Len()
}
