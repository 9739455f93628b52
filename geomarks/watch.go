package geomarks

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const reloadDebounce = 100 * time.Millisecond

// Watch reloads the dataset at path whenever it changes and passes it to onLoad.
// It blocks until ctx is done. Decode errors are logged and the previous dataset
// stays in use.
func Watch(ctx context.Context, path string, logger *zap.SugaredLogger, onLoad func(Dataset)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating dataset watcher")
	}
	defer watcher.Close()

	// editors often replace the file, so watch the directory
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "watching %s", dir)
	}

	debounce := time.NewTimer(0)
	<-debounce.C
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			debounce.Reset(reloadDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("dataset watcher error", "error", err)
		case <-debounce.C:
			ds, err := LoadDataset(path)
			if err != nil {
				logger.Warnw("dataset reload failed, keeping previous", "path", path, "error", err)
				continue
			}
			logger.Infow("dataset reloaded", "path", path, "categories", len(ds))
			onLoad(ds)
		}
	}
}
