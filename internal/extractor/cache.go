package extractor

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/vmihiranga/digizigtool/internal/registry"
)

// Cache is an optional TTL'd LRU over normalized results, keyed by
// capability and input. Entries are whole responses, so serving from cache
// skips the candidate loop entirely.
type Cache struct {
	lru *expirable.LRU[string, any]
}

// NewCache builds a result cache holding up to maxEntries values for ttl.
func NewCache(maxEntries int, ttl time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[string, any](maxEntries, nil, ttl),
	}
}

func cacheKey(capability registry.Capability, input string) string {
	return string(capability) + "\x00" + input
}

// Get returns the cached result for a capability and input, if present.
func (c *Cache) Get(capability registry.Capability, input string) (any, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(cacheKey(capability, input))
}

// Add stores a result for a capability and input.
func (c *Cache) Add(capability registry.Capability, input string, value any) {
	if c == nil {
		return
	}
	c.lru.Add(cacheKey(capability, input), value)
}
