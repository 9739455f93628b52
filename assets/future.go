package assets

import (
	"context"
	"image"

	"github.com/pkg/errors"

	"github.com/olablt/gio-geomarks/assets/worker"
)

// Future is the pending result of one asset load. It resolves exactly once.
type Future struct {
	Path string

	done chan struct{}
	img  image.Image
	err  error
}

func newFuture(path string) *Future {
	return &Future{Path: path, done: make(chan struct{})}
}

func (f *Future) resolve(img image.Image, err error) {
	f.img, f.err = img, err
	close(f.done)
}

// Done is closed once the load has settled.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the load settles or ctx is done.
func (f *Future) Wait(ctx context.Context) (image.Image, error) {
	select {
	case <-f.done:
		return f.img, f.err
	case <-ctx.Done():
		return nil, loadErr(f.Path, ctx.Err())
	}
}

// Async issues loads on a worker pool without blocking the caller.
type Async struct {
	loader Loader
	pool   *worker.Pool
}

func NewAsync(loader Loader, pool *worker.Pool) *Async {
	return &Async{loader: loader, pool: pool}
}

// Load starts loading path and returns immediately.
func (a *Async) Load(ctx context.Context, path string) *Future {
	f := newFuture(path)
	var img image.Image
	err := a.pool.Submit(worker.Task{
		Ctx: ctx,
		Work: func(ctx context.Context) error {
			var err error
			img, err = a.loader.Load(ctx, path)
			return err
		},
		Done: func(err error) {
			if err != nil {
				f.resolve(nil, asLoadErr(path, err))
				return
			}
			f.resolve(img, nil)
		},
	})
	if err != nil {
		f.resolve(nil, loadErr(path, err))
	}
	return f
}

// asLoadErr wraps errors that did not come from a Loader (shutdown, timeouts).
func asLoadErr(path string, err error) error {
	if errors.Is(err, ErrAssetLoad) {
		return err
	}
	return loadErr(path, err)
}
