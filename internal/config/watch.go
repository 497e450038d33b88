package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc receives the reloaded configuration, or the error that
// prevented loading it.
type ReloadFunc func(cfg *Config, err error)

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path    string
	fn      ReloadFunc
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching path. The parent directory is watched so that
// editors replacing the file by rename are noticed.
func NewWatcher(path string, fn ReloadFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	return &Watcher{path: abs, fn: fn, watcher: fsw}, nil
}

// Run delivers reloads until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.fn(nil, fmt.Errorf("watching %s: %w", w.path, err))
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadAll(w.path)
	w.fn(cfg, err)
}

// Watch reloads path on every change until ctx is done.
func Watch(ctx context.Context, path string, fn ReloadFunc) error {
	w, err := NewWatcher(path, fn)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
