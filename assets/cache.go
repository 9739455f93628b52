package assets

import (
	"context"
	"image"
	"sync"
)

// Cached remembers every image its loader decoded successfully, keyed by path.
// Failures are not cached so a later request retries.
type Cached struct {
	loader Loader
	cache  map[string]image.Image
	mu     sync.RWMutex
}

func NewCached(loader Loader) *Cached {
	return &Cached{
		loader: loader,
		cache:  make(map[string]image.Image),
	}
}

func (c *Cached) Load(ctx context.Context, path string) (image.Image, error) {
	c.mu.RLock()
	img, ok := c.cache[path]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	img, err := c.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.cache[path] = img
	c.mu.Unlock()
	return img, nil
}

func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *Cached) Clear() {
	c.mu.Lock()
	c.cache = make(map[string]image.Image)
	c.mu.Unlock()
}
