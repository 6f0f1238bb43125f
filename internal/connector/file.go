package connector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/message"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

// fileSource watches a directory (or single file's parent directory) and
// emits a message for every create/write event, grounded on
// original_source/engine/connector.py's file source and wired to
// github.com/fsnotify/fsnotify per SPEC_FULL §11 (also used for config
// hot-reload watching).
type fileSource struct {
	watcher *fsnotify.Watcher
	path    string
}

// NewFileSource constructs a Source that watches the directory containing
// path (or path itself, if it is already a directory) for filesystem events.
func NewFileSource(_ context.Context, opts map[string]any) (ports.Source, error) {
	path, _ := opts["path"].(string)
	if path == "" {
		return nil, dcerrors.Configuration("file source requires a path", nil)
	}

	watchDir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		watchDir = filepath.Dir(path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, dcerrors.Connector(dcerrors.ConnectorPermanent, "failed to create file watcher", err)
	}
	if err := watcher.Add(watchDir); err != nil {
		watcher.Close()
		return nil, dcerrors.Connector(dcerrors.ConnectorPermanent, fmt.Sprintf("failed to watch %q", watchDir), err)
	}

	return &fileSource{watcher: watcher, path: path}, nil
}

func (f *fileSource) Receive(ctx context.Context) (message.Message, error) {
	for {
		select {
		case <-ctx.Done():
			return message.Message{}, dcerrors.Cancelled(ctx.Err())
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return message.Message{}, dcerrors.Connector(dcerrors.ConnectorPermanent, "file watcher closed", nil)
			}
			return message.Message{}, dcerrors.Connector(dcerrors.ConnectorTransient, "file watcher error", err)
		case event, ok := <-f.watcher.Events:
			if !ok {
				return message.Message{}, dcerrors.Connector(dcerrors.ConnectorPermanent, "file watcher closed", nil)
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			return message.New(map[string]any{
				"path": event.Name,
				"op":   event.Op.String(),
			}), nil
		}
	}
}

func (f *fileSource) Close(_ context.Context) error {
	return f.watcher.Close()
}

// fileDestination appends each message's rendered body to a file, grounded
// on original_source/engine/connector.py's file destination.
type fileDestination struct {
	path string
	file *os.File
}

// NewFileDestination constructs a Destination that appends to the file at
// the endpoint's path, creating it and any content up front.
func NewFileDestination(_ context.Context, opts map[string]any) (ports.Destination, error) {
	path, _ := opts["path"].(string)
	if path == "" {
		return nil, dcerrors.Configuration("file destination requires a path", nil)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, dcerrors.Connector(dcerrors.ConnectorPermanent, fmt.Sprintf("failed to open %q", path), err)
	}
	return &fileDestination{path: path, file: f}, nil
}

func (d *fileDestination) Send(_ context.Context, msg message.Message) error {
	line := fmt.Sprintf("%v\n", msg.Body)
	if _, err := d.file.WriteString(line); err != nil {
		return dcerrors.Connector(dcerrors.ConnectorTransient, "failed to write to file destination", err)
	}
	return nil
}

func (d *fileDestination) Close(_ context.Context) error {
	return d.file.Close()
}
