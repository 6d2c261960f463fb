package texture

import (
	"image"
	"sync"

	"go.uber.org/zap"
)

// Resolver resolves a texture name to a decoded image, or nil.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache. Failed loads are cached as nil
// so a missing asset is only reported once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
	log   *zap.Logger
}

type cacheEntry struct {
	img *image.NRGBA
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
		log:   log,
	}
}

// Resolve loads and caches a texture by name. Returns nil if not found or
// not decodable.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		c.log.Warn("texture not found", zap.String("name", texName))
		return nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := LoadTexture(path)
	if err != nil {
		c.log.Warn("texture load failed", zap.String("name", texName), zap.Error(err))
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img}
	return img
}

// Purge drops every cached image.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.items = make(map[string]*cacheEntry)
	c.mu.Unlock()
}
