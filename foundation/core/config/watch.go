// File: watch.go
// Title: Configuration File Watching Implementation
// Description: Watches listfiles and their configuration file for changes
//              and reports them after a short settling delay. Configuration
//              changes are reloaded before listeners are notified.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of file watching
// - 2026-10-18 v0.2.0: fsnotify based watcher with debounce

package config

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/listfmt/foundation/core/error"
	mdwlog "github.com/msto63/listfmt/foundation/core/log"
)

// DefaultDebounce is the settling delay between the last event and the
// notification
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports changes to a set of files. Directories are watched
// rather than the files themselves so that editors replacing a file by
// rename are still seen.
type Watcher struct {
	fs         *fsnotify.Watcher
	files      map[string]struct{}
	configPath string
	debounce   time.Duration
	logger     *mdwlog.Logger

	onChange func(paths []string)
	onConfig func(cfg *Config)

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewWatcher creates a watcher for files. configPath may be empty; when set,
// the file is watched too and reloaded on change.
func NewWatcher(files []string, configPath string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create file watcher").
			WithCode(mdwerror.CodeIOError)
	}

	w := &Watcher{
		fs:       fs,
		files:    make(map[string]struct{}),
		debounce: DefaultDebounce,
		logger:   mdwlog.GetDefault().WithName("config.watch"),
		pending:  make(map[string]struct{}),
	}

	dirs := make(map[string]struct{})
	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for _, f := range files {
		add(f)
	}
	if configPath != "" {
		add(configPath)
		w.configPath, _ = filepath.Abs(configPath)
	}

	for dir := range dirs {
		if err := fs.Add(dir); err != nil {
			fs.Close()
			return nil, mdwerror.Wrap(err, "failed to watch directory").
				WithCode(mdwerror.CodeIOError).
				WithDetail("directory", dir)
		}
	}
	return w, nil
}

// WithDebounce sets the settling delay
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// WithLogger sets the logger used for reload failures
func (w *Watcher) WithLogger(logger *mdwlog.Logger) *Watcher {
	w.logger = logger
	return w
}

// OnChange registers the callback receiving changed listfiles, sorted
func (w *Watcher) OnChange(fn func(paths []string)) *Watcher {
	w.onChange = fn
	return w
}

// OnConfigReload registers the callback receiving a reloaded configuration
func (w *Watcher) OnConfigReload(fn func(cfg *Config)) *Watcher {
	w.onConfig = fn
	return w
}

// Run dispatches events until ctx is cancelled or the watcher is closed
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			path := filepath.Clean(event.Name)
			if _, watched := w.files[path]; !watched {
				continue
			}
			w.mu.Lock()
			w.pending[path] = struct{}{}
			w.mu.Unlock()
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnWithErr("File watcher error", err)

		case <-timer.C:
			w.flush()
		}
	}
}

// flush delivers the pending changes
func (w *Watcher) flush() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	var changed []string
	configChanged := false
	for _, p := range paths {
		if p == w.configPath {
			configChanged = true
			continue
		}
		changed = append(changed, p)
	}

	if configChanged {
		cfg, err := Load(w.configPath)
		if err != nil {
			w.logger.ErrorWithErr("Configuration reload failed, keeping previous settings", err,
				mdwlog.Fields{"configPath": w.configPath})
		} else {
			w.logger.Info("Configuration reloaded", mdwlog.Fields{"configPath": w.configPath})
			if w.onConfig != nil {
				w.onConfig(cfg)
			}
			// every listfile is affected by a new configuration
			changed = changed[:0]
			for f := range w.files {
				if f != w.configPath {
					changed = append(changed, f)
				}
			}
		}
	}

	if len(changed) > 0 && w.onChange != nil {
		sort.Strings(changed)
		w.onChange(changed)
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fs.Close()
}
