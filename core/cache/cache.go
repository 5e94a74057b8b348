package cache

import (
	"sync"
	"time"
)

// Cache is a thread-safe in-process key-value store with per-entry TTL and tags.
type Cache struct {
	mu       sync.RWMutex
	items    map[string]cacheItem
	tagIndex map[string]map[string]struct{}
	now      func() time.Time
}

var (
	once     sync.Once
	instance *Cache
)

// GetInstance returns the process-wide cache.
func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

// NewCache creates a new Cache instance.
func NewCache() *Cache {
	return &Cache{
		items:    make(map[string]cacheItem),
		tagIndex: make(map[string]map[string]struct{}),
		now:      time.Now,
	}
}

// cacheItem holds a value and its expiration time.
type cacheItem struct {
	Value     interface{}
	ExpiresAt int64 // Unix nanoseconds; 0 means no expiration
	Tags      []string
}

// Set stores a value for a key with an optional TTL (in seconds) and optional tags.
// If ttl is 0, the value does not expire.
func (c *Cache) Set(key string, value interface{}, ttl int64, tags []string) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = c.now().Add(time.Duration(ttl) * time.Second).UnixNano()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
	c.items[key] = cacheItem{Value: value, ExpiresAt: expiresAt, Tags: tags}
	for _, tag := range tags {
		keys, ok := c.tagIndex[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.tagIndex[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// Get retrieves a value for a key. Returns (value, true) if found and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if item.ExpiresAt > 0 && c.now().UnixNano() > item.ExpiresAt {
		c.Delete(key)
		return nil, false
	}
	return item.Value, true
}

// Delete removes a key from the cache and from every tag it carries.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	c.removeLocked(key)
	c.mu.Unlock()
}

func (c *Cache) removeLocked(key string) {
	item, ok := c.items[key]
	if !ok {
		return
	}
	delete(c.items, key)
	for _, tag := range item.Tags {
		if keys, ok := c.tagIndex[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.tagIndex, tag)
			}
		}
	}
}

// DeleteByTag deletes all cache entries assigned to a tag.
func (c *Cache) DeleteByTag(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := c.tagIndex[tag]
	n := 0
	for k := range keys {
		c.removeLocked(k)
		n++
	}
	delete(c.tagIndex, tag)
	return n
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache) Purge() int {
	now := c.now().UnixNano()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, item := range c.items {
		if item.ExpiresAt > 0 && now > item.ExpiresAt {
			c.removeLocked(k)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, expired ones included until purged.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
