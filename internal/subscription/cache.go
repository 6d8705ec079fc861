package subscription

import (
	"sync"
	"time"

	"github.com/habitquest/habitquest-go/internal/domain"
)

// AvailabilityCache holds the last founder availability count for a short TTL
type AvailabilityCache struct {
	mu        sync.RWMutex
	value     domain.FounderAvailability
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewAvailabilityCache creates a new cache with the specified TTL
func NewAvailabilityCache(ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{ttl: ttl, now: time.Now}
}

// Get returns the cached availability if it hasn't expired
func (c *AvailabilityCache) Get() (domain.FounderAvailability, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.expiresAt.IsZero() || c.now().After(c.expiresAt) {
		return domain.FounderAvailability{}, false
	}
	return c.value, true
}

// Set stores availability in the cache
func (c *AvailabilityCache) Set(a domain.FounderAvailability) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = a
	c.expiresAt = c.now().Add(c.ttl)
}

// Invalidate drops the cached value
func (c *AvailabilityCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expiresAt = time.Time{}
}
