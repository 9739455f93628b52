// Package scene ties the viewport, the interaction controller, the icon cache and
// the renderer to the dataset and selection supplied by the UI.
//
// Every change that affects the picture (dataset, selection, viewport, surface
// size, icons or base image arriving) marks the scene dirty and notifies the
// OnInvalidate listeners; the host then calls Render on its next frame.
package scene

import (
	"context"
	"image"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/olablt/gio-geomarks/assets"
	"github.com/olablt/gio-geomarks/assets/worker"
	"github.com/olablt/gio-geomarks/geomarks"
	"github.com/olablt/gio-geomarks/icons"
	"github.com/olablt/gio-geomarks/interaction"
	"github.com/olablt/gio-geomarks/render"
	"github.com/olablt/gio-geomarks/viewport"
)

type Options struct {
	Loader assets.Loader
	Logger *zap.SugaredLogger
	// Workers bounds concurrent asset loads; 4 when zero.
	Workers int
	// LoadTimeout bounds one asset load; worker.DefaultTimeout when zero.
	LoadTimeout time.Duration
	// Policy decides how icon batches with failures commit; AllOrNothing when nil.
	Policy   icons.Policy
	Renderer *render.Renderer
}

type Scene struct {
	logger     *zap.SugaredLogger
	pool       *worker.Pool
	async      *assets.Async
	icons      *icons.Cache
	renderer   *render.Renderer
	controller *interaction.Controller

	ctx     context.Context
	cancel  context.CancelFunc
	pending sync.WaitGroup

	mu        sync.RWMutex
	base      image.Image
	dataset   geomarks.Dataset
	selection geomarks.Selection
	size      image.Point

	dirty       atomic.Bool
	listenersMu sync.Mutex
	listeners   []func()
}

func New(opts Options) *Scene {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	pool := worker.NewPool(workers)
	if opts.LoadTimeout > 0 {
		pool.Timeout = opts.LoadTimeout
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.New()
	}

	async := assets.NewAsync(assets.NewCached(opts.Loader), pool)
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scene{
		logger:     logger,
		pool:       pool,
		async:      async,
		icons:      icons.New(async, opts.Policy),
		renderer:   renderer,
		controller: interaction.NewController(viewport.New()),
		ctx:        ctx,
		cancel:     cancel,
	}
	s.icons.SetOnCommitCallback(s.Invalidate)
	s.controller.SetOnChangeCallback(s.Invalidate)
	s.dirty.Store(true)
	return s
}

// Start begins loading the base image.
func (s *Scene) Start() {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		img, err := s.async.Load(s.ctx, assets.BaseImagePath).Wait(s.ctx)
		if err != nil {
			s.logger.Errorw("base image failed to load, canvas stays blank", "path", assets.BaseImagePath, "error", err)
			return
		}
		s.mu.Lock()
		s.base = img
		s.mu.Unlock()
		s.logger.Debugw("base image loaded", "size", img.Bounds().Size())
		s.Invalidate()
	}()
}

// Close cancels outstanding loads and stops the worker pool.
func (s *Scene) Close() {
	s.cancel()
	s.pending.Wait()
	s.pool.Shutdown()
}

// Wait blocks until every load started so far has settled.
func (s *Scene) Wait() {
	s.pending.Wait()
}

func (s *Scene) Controller() *interaction.Controller { return s.controller }

func (s *Scene) Viewport() *viewport.State { return s.controller.Viewport() }

func (s *Scene) Icons() *icons.Cache { return s.icons }

// SetDataset replaces the dataset. The slice is read, never modified.
func (s *Scene) SetDataset(ds geomarks.Dataset) {
	s.mu.Lock()
	s.dataset = ds
	s.mu.Unlock()
	s.refreshIcons()
	s.Invalidate()
}

// SetSelection replaces the visible category set; nil shows every category.
func (s *Scene) SetSelection(sel geomarks.Selection) {
	s.mu.Lock()
	s.selection = maps.Clone(sel)
	s.mu.Unlock()
	s.refreshIcons()
	s.Invalidate()
}

func (s *Scene) Dataset() geomarks.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Visible returns the dataset filtered by the selection.
func (s *Scene) Visible() geomarks.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset.Filter(s.selection)
}

// Resize records the host surface size and invalidates when it changed.
func (s *Scene) Resize(size image.Point) {
	s.mu.Lock()
	changed := s.size != size
	s.size = size
	s.mu.Unlock()
	if changed {
		s.Invalidate()
	}
}

func (s *Scene) Size() image.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// OnInvalidate registers fn to run whenever the scene needs a new frame. fn may be
// called from loader goroutines and must not block.
func (s *Scene) OnInvalidate(fn func()) {
	s.listenersMu.Lock()
	s.listeners = append(s.listeners, fn)
	s.listenersMu.Unlock()
}

func (s *Scene) Invalidate() {
	s.dirty.Store(true)
	s.listenersMu.Lock()
	listeners := append([]func(){}, s.listeners...)
	s.listenersMu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Dirty reports whether something changed since the last Render.
func (s *Scene) Dirty() bool {
	return s.dirty.Load()
}

// Render repaints surf with the current state.
func (s *Scene) Render(surf render.Surface) {
	s.dirty.Store(false)
	s.mu.RLock()
	frame := render.Frame{
		Base:     s.base,
		Dataset:  s.dataset.Filter(s.selection),
		Icons:    s.icons,
		Viewport: s.controller.Viewport(),
	}
	s.mu.RUnlock()
	s.renderer.Render(surf, frame)
}

func (s *Scene) refreshIcons() {
	names := s.Visible().Names()
	if len(names) == 0 || s.icons.Seen(names) {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.icons.Populate(s.ctx, names); err != nil {
			s.logger.Warnw("icon batch failed", "categories", names, "error", err)
			return
		}
		s.logger.Debugw("icons loaded", "categories", names)
	}()
}
