package cache

import (
	"context"
	"sync"
	"time"

	"talentnet-backend/domain/graph"
)

// InMemoryCache is a TTL cache with a per-user reverse index: every entry
// registers the users whose edges it was computed from, and any mutation
// touching one of those users drops all of their entries synchronously.
// In production this would sit in front of Redis or similar.
type InMemoryCache struct {
	mu     sync.Mutex
	items  map[string]cacheItem
	byUser map[graph.UserID]map[string]struct{}
}

type cacheItem struct {
	value     interface{}
	expiresAt time.Time
	users     []graph.UserID
}

// NewInMemoryCache creates a new in-memory cache
func NewInMemoryCache() *InMemoryCache {
	c := &InMemoryCache{
		items:  make(map[string]cacheItem),
		byUser: make(map[graph.UserID]map[string]struct{}),
	}

	go c.cleanupExpired()

	return c
}

// Get retrieves a value from cache
func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.items[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		c.dropLocked(key)
		return nil, false
	}
	return item.value, true
}

// Set stores a value, indexing it by the users it depends on
func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration, users ...graph.UserID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, exists := c.items[key]; exists {
		c.unindexLocked(key, old.users)
	}

	c.items[key] = cacheItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
		users:     users,
	}
	for _, u := range users {
		idx, ok := c.byUser[u]
		if !ok {
			idx = make(map[string]struct{})
			c.byUser[u] = idx
		}
		idx[key] = struct{}{}
	}
}

// InvalidateUser drops every entry that depends on the given user. Called
// synchronously from the graph store's mutation hook.
func (c *InMemoryCache) InvalidateUser(ctx context.Context, user graph.UserID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.byUser[user] {
		c.dropLocked(key)
	}
	delete(c.byUser, user)
}

// Clear removes all values from cache
func (c *InMemoryCache) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]cacheItem)
	c.byUser = make(map[graph.UserID]map[string]struct{})
}

func (c *InMemoryCache) dropLocked(key string) {
	item, ok := c.items[key]
	if !ok {
		return
	}
	c.unindexLocked(key, item.users)
	delete(c.items, key)
}

func (c *InMemoryCache) unindexLocked(key string, users []graph.UserID) {
	for _, u := range users {
		if idx, ok := c.byUser[u]; ok {
			delete(idx, key)
			if len(idx) == 0 {
				delete(c.byUser, u)
			}
		}
	}
}

// cleanupExpired periodically removes expired items
func (c *InMemoryCache) cleanupExpired() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, item := range c.items {
			if now.After(item.expiresAt) {
				c.dropLocked(key)
			}
		}
		c.mu.Unlock()
	}
}
