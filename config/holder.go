/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"dirpx.dev/schema/metrics"
)

// Holder provides thread-safe access to an overrides file with hot reload.
type Holder struct {
	mu        sync.RWMutex
	overrides *Overrides
	path      string
	logger    zerolog.Logger
	metrics   *metrics.Collector
	watcher   *fsnotify.Watcher
	onChange  []func(*Overrides)
	stopOnce  sync.Once
	stopCh    chan struct{}
}

// NewHolder loads the overrides file at path.
func NewHolder(path string, logger zerolog.Logger) (*Holder, error) {
	o, err := LoadOverrides(path)
	if err != nil {
		return nil, fmt.Errorf("load overrides: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	return &Holder{
		overrides: o,
		path:      absPath,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}, nil
}

// Get returns the current overrides.
func (h *Holder) Get() *Overrides {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.overrides
}

// SetMetrics makes h record reload attempts in c.
func (h *Holder) SetMetrics(c *metrics.Collector) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.metrics = c
}

// Reload re-reads the file. On error the previous overrides are kept.
func (h *Holder) Reload() error {
	h.logger.Info().Str("path", h.path).Msg("reloading schema overrides")

	o, err := LoadOverrides(h.path)
	h.mu.RLock()
	h.metrics.RecordReload(err)
	h.mu.RUnlock()
	if err != nil {
		h.logger.Error().Err(err).Msg("overrides reload failed, keeping old overrides")
		return fmt.Errorf("reload overrides: %w", err)
	}

	h.mu.Lock()
	h.overrides = o
	listeners := slices.Clone(h.onChange)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(o)
	}

	h.logger.Info().Int("classes", len(o.Classes)).Msg("schema overrides reloaded")
	return nil
}

// OnChange registers a callback run after every successful reload.
func (h *Holder) OnChange(fn func(*Overrides)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// WatchFile starts watching the overrides file. Changes trigger Reload.
func (h *Holder) WatchFile() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory: editors replace files on save.
	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	h.mu.Lock()
	h.watcher = watcher
	h.mu.Unlock()

	go h.watchLoop(watcher)

	h.logger.Info().Str("path", h.path).Msg("watching schema overrides")
	return nil
}

// Stop stops watching. It is safe to call more than once.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.watcher != nil {
			h.watcher.Close()
		}
	})
}

func (h *Holder) watchLoop(w *fsnotify.Watcher) {
	filename := filepath.Base(h.path)

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				h.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("overrides file changed")
				if err := h.Reload(); err != nil {
					h.logger.Error().Err(err).Msg("file watch reload failed")
				}
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("file watcher error")

		case <-h.stopCh:
			return
		}
	}
}
