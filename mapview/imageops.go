package mapview

import (
	"image"
	"sync"

	"gioui.org/op/paint"
)

// ImageOpCache keeps one paint.ImageOp per decoded image so the GPU texture is
// uploaded once instead of on every frame.
type ImageOpCache struct {
	cache map[image.Image]paint.ImageOp
	mu    sync.RWMutex
}

func NewImageOpCache() *ImageOpCache {
	return &ImageOpCache{
		cache: make(map[image.Image]paint.ImageOp),
	}
}

// Op returns the cached op for img, creating it on first use.
func (c *ImageOpCache) Op(img image.Image) paint.ImageOp {
	c.mu.RLock()
	imgOp, ok := c.cache[img]
	c.mu.RUnlock()
	if ok {
		return imgOp
	}

	imgOp = paint.NewImageOp(img)
	imgOp.Filter = paint.FilterLinear
	c.mu.Lock()
	c.cache[img] = imgOp
	c.mu.Unlock()
	return imgOp
}

func (c *ImageOpCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *ImageOpCache) Clear() {
	c.mu.Lock()
	c.cache = make(map[image.Image]paint.ImageOp)
	c.mu.Unlock()
}
