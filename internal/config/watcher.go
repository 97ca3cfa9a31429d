// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG FILE WATCHER
// =============================================================================

// DefaultDebounce coalesces bursts of writes from editors.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a config file when it changes on disk and publishes the
// new configuration on Updates. Invalid edits are logged and skipped.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	updates  chan *Config

	closeOnce sync.Once
}

// NewWatcher creates a watcher for path. The parent directory is watched so
// that atomic rename-on-save editors are picked up.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     filepath.Clean(path),
		watcher:  fw,
		debounce: debounce,
		updates:  make(chan *Config, 1),
	}, nil
}

// Updates delivers each successfully reloaded configuration.
// The channel is closed when Watch returns.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Watch processes file events until ctx is done.
func (w *Watcher) Watch(ctx context.Context) {
	defer close(w.updates)
	defer w.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			cfg, err := LoadFromPath(w.path)
			if err != nil {
				log.Printf("CONFIG_RELOAD_FAILED | path=%s error=%v", w.path, err)
				continue
			}
			log.Printf("CONFIG_RELOADED | path=%s base_url=%s", w.path, cfg.API.BaseURL)
			select {
			case w.updates <- cfg:
			default:
				// Replace a stale pending update with the newest one.
				select {
				case <-w.updates:
				default:
				}
				w.updates <- cfg
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("CONFIG_WATCH_ERROR | error=%v", err)
		}
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}
