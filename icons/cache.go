// Package icons keeps the marker icon of every category that has been shown.
//
// Icons are loaded in batches, one batch per distinct set of visible categories.
// Whether a batch with failures commits anything is up to the Policy; the default
// AllOrNothing discards the whole batch. Committed icons are never evicted.
package icons

import (
	"context"
	"image"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/olablt/gio-geomarks/assets"
	"github.com/olablt/gio-geomarks/geomarks"
)

type Cache struct {
	loader *assets.Async
	policy Policy

	mu       sync.RWMutex
	icons    map[string]image.Image
	seen     map[string]bool
	onCommit func()
}

func New(loader *assets.Async, policy Policy) *Cache {
	if policy == nil {
		policy = AllOrNothing{}
	}
	return &Cache{
		loader: loader,
		policy: policy,
		icons:  make(map[string]image.Image),
		seen:   make(map[string]bool),
	}
}

// SetOnCommitCallback registers fn to run after a batch committed at least one icon.
func (c *Cache) SetOnCommitCallback(fn func()) {
	c.mu.Lock()
	c.onCommit = fn
	c.mu.Unlock()
}

func (c *Cache) Get(category string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.icons[category]
	return img, ok
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.icons)
}

// Snapshot returns a copy of the current mapping.
func (c *Cache) Snapshot() map[string]image.Image {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]image.Image, len(c.icons))
	for k, v := range c.icons {
		out[k] = v
	}
	return out
}

// Seen reports whether this exact category set already populated successfully.
func (c *Cache) Seen(categories []string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seen[geomarks.Key(categories)]
}

// Populate loads the icon of every category and commits them according to the
// policy. It blocks until every load has settled.
func (c *Cache) Populate(ctx context.Context, categories []string) error {
	names := dedupe(categories)
	if len(names) == 0 || c.Seen(names) {
		return nil
	}

	results := make([]Result, len(names))
	var g errgroup.Group
	for i, name := range names {
		f := c.loader.Load(ctx, assets.IconPath(name))
		g.Go(func() error {
			img, err := f.Wait(ctx)
			results[i] = Result{Category: name, Image: img, Err: err}
			return err
		})
	}
	// every failure is also recorded in results
	_ = g.Wait()

	committed, err := c.policy.Commit(results)

	c.mu.Lock()
	for name, img := range committed {
		c.icons[name] = img
	}
	if err == nil {
		c.seen[geomarks.Key(names)] = true
	}
	onCommit := c.onCommit
	c.mu.Unlock()

	if len(committed) > 0 && onCommit != nil {
		onCommit()
	}
	return err
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
