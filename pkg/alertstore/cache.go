package alertstore

import (
	"context"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/cache"
)

// DefaultCacheCapacity is the number of scopes kept by NewCache when capacity is not positive.
const DefaultCacheCapacity = 10000

// Cache keeps alert lists in a bounded LRU. When the capacity is reached the
// least recently used scope is dropped with its alerts.
type Cache struct {
	lru *cache.LRUCache[string, []alerts.Alert]
}

// NewCache creates an LRU backed store holding at most capacity scopes.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{lru: cache.NewLRUCache[string, []alerts.Alert](capacity)}
}

func (c *Cache) Load(ctx context.Context, scope string) ([]alerts.Alert, error) {
	list, _ := c.lru.Get(scope)
	return alerts.CloneList(list), nil
}

func (c *Cache) Append(ctx context.Context, scope string, a alerts.Alert) error {
	c.lru.Update(scope, func(list []alerts.Alert, found bool) ([]alerts.Alert, bool) {
		next, _ := alerts.AppendUnique(alerts.CloneList(list), a.Clone())
		return next, true
	})
	return nil
}

func (c *Cache) Replace(ctx context.Context, scope string, list []alerts.Alert) error {
	if len(list) == 0 {
		return c.Clear(ctx, scope)
	}
	c.lru.Put(scope, alerts.CloneList(alerts.Dedupe(list)))
	return nil
}

func (c *Cache) Clear(ctx context.Context, scope string) error {
	c.lru.Remove(scope)
	return nil
}

// Len returns the number of cached scopes.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Scopes returns the cached scopes from most to least recently used.
func (c *Cache) Scopes() []string {
	return c.lru.Keys()
}
