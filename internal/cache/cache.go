// Package cache provides thread-safe generic caching functionality and the rendered-preview cache.
package cache

import "sync"

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

func (c *Cache[K, V]) SetTo(items map[K]V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
}

// Rendered previews are keyed by content hash and syntax theme so a
// theme switch never serves stale highlighting.
var renderedPreviewCache = NewCache[string, string]()

func GetRenderedPreview(contentHash, syntaxTheme string) (string, bool) {
	key := contentHash + ":" + syntaxTheme
	return renderedPreviewCache.Get(key)
}

func SetRenderedPreview(contentHash, syntaxTheme, html string) {
	key := contentHash + ":" + syntaxTheme
	renderedPreviewCache.Set(key, html)
}

func ClearRenderedPreviewCache() {
	renderedPreviewCache.Clear()
}
