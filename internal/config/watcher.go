package config

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

// Watcher watches a configuration file for writes and invokes onChange
// with the file's path, per SPEC_FULL §12's hot-reload supplement. It
// reuses github.com/fsnotify/fsnotify, the same library the file source
// (internal/connector) uses for directory watching.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  ports.Logger
}

// NewWatcher starts watching path (a file or its containing directory, so
// editors that replace-by-rename are still observed).
func NewWatcher(path string, logger ports.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, dcerrors.Configuration("failed to start configuration watcher", err)
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, dcerrors.Configuration("failed to watch configuration path: "+path, err)
	}
	return &Watcher{watcher: w, logger: logger}, nil
}

// Run blocks, invoking onChange once per write/create event, until ctx is
// cancelled or Close is called. Errors from the underlying watcher are
// logged and do not stop the loop, mirroring the file source's tolerance
// of spurious fsnotify errors.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			onChange(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn(ctx, "configuration watcher error", "error", err)
			}
		}
	}
}

// Close releases the underlying OS watch.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
