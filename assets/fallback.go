package assets

import (
	"context"
	"image"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Fallback serves from primary and, when that fails, from fallback.
type Fallback struct {
	primary  Loader
	fallback Loader
	logger   *zap.SugaredLogger
}

func NewFallback(primary, fallback Loader, logger *zap.SugaredLogger) *Fallback {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Fallback{primary: primary, fallback: fallback, logger: logger}
}

func (l *Fallback) Load(ctx context.Context, path string) (image.Image, error) {
	img, err := l.primary.Load(ctx, path)
	if err == nil {
		return img, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	img, fbErr := l.fallback.Load(ctx, path)
	if fbErr != nil {
		return nil, multierr.Append(err, fbErr)
	}
	l.logger.Warnw("asset replaced by fallback", "path", path, "error", err)
	return img, nil
}
