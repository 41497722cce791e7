package cache

import (
	"container/list"
	"sync"
)

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// LRUCache is a bounded map that drops the least recently used key once the
// capacity is exceeded. Safe for concurrent use.
type LRUCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List
	onEvict  func(key K, value V)
}

// NewLRUCache panics when capacity is not positive.
func NewLRUCache[K comparable, V any](capacity int) *LRUCache[K, V] {
	if capacity <= 0 {
		panic("cache: capacity must be positive")
	}
	return &LRUCache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
}

// SetEvictCallback registers fn for entries dropped by capacity, Remove or Clear.
// fn runs after the cache lock is released, so it may block or use the cache.
func (c *LRUCache[K, V]) SetEvictCallback(fn func(key K, value V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Get returns the value for key and marks it as recently used.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*lruEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Peek returns the value for key without touching its recency.
func (c *LRUCache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		return elem.Value.(*lruEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put stores value under key and returns the replaced value, if any.
// Replacing a value does not fire the evict callback.
func (c *LRUCache[K, V]) Put(key K, value V) (V, bool) {
	c.mu.Lock()
	old, replaced, evicted := c.put(key, value)
	fn := c.onEvict
	c.mu.Unlock()

	notify(fn, evicted)
	return old, replaced
}

// Update runs fn on the current value of key under the cache lock.
// fn returns the new value and whether to keep it; returning false removes the key.
func (c *LRUCache[K, V]) Update(key K, fn func(current V, found bool) (V, bool)) {
	c.mu.Lock()
	var current V
	elem, found := c.items[key]
	if found {
		current = elem.Value.(*lruEntry[K, V]).value
	}

	var evicted []*lruEntry[K, V]
	next, keep := fn(current, found)
	switch {
	case keep:
		_, _, evicted = c.put(key, next)
	case found:
		evicted = append(evicted, c.removeElement(elem))
	}
	onEvict := c.onEvict
	c.mu.Unlock()

	notify(onEvict, evicted)
}

// Remove deletes key and returns its value.
func (c *LRUCache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	elem, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	entry := c.removeElement(elem)
	fn := c.onEvict
	c.mu.Unlock()

	notify(fn, []*lruEntry[K, V]{entry})
	return entry.value, true
}

func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Keys returns the keys from most to least recently used.
func (c *LRUCache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, c.order.Len())
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*lruEntry[K, V]).key)
	}
	return keys
}

// Clear drops every entry, firing the evict callback for each one.
func (c *LRUCache[K, V]) Clear() {
	c.mu.Lock()
	evicted := make([]*lruEntry[K, V], 0, c.order.Len())
	for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
		evicted = append(evicted, elem.Value.(*lruEntry[K, V]))
	}
	c.items = make(map[K]*list.Element, c.capacity)
	c.order.Init()
	fn := c.onEvict
	c.mu.Unlock()

	notify(fn, evicted)
}

// Must be called with lock held. Returns the entries dropped by capacity.
func (c *LRUCache[K, V]) put(key K, value V) (V, bool, []*lruEntry[K, V]) {
	var zero V
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*lruEntry[K, V])
		old := entry.value
		entry.value = value
		return old, true, nil
	}

	c.items[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
	var evicted []*lruEntry[K, V]
	for c.order.Len() > c.capacity {
		evicted = append(evicted, c.removeElement(c.order.Back()))
	}
	return zero, false, evicted
}

// Must be called with lock held.
func (c *LRUCache[K, V]) removeElement(elem *list.Element) *lruEntry[K, V] {
	c.order.Remove(elem)
	entry := elem.Value.(*lruEntry[K, V])
	delete(c.items, entry.key)
	return entry
}

// notify must be called without the lock.
func notify[K comparable, V any](fn func(K, V), evicted []*lruEntry[K, V]) {
	if fn == nil {
		return
	}
	for _, entry := range evicted {
		fn(entry.key, entry.value)
	}
}
