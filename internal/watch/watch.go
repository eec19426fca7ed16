// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package watch re-reads a config file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	xglog "github.com/ManuGH/gameconf/internal/log"
	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/ManuGH/gameconf/internal/store"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce collapses the burst of events an editor or an atomic
// rename produces into one reload.
const DefaultDebounce = 500 * time.Millisecond

// Handler receives each freshly decoded record.
type Handler func(schema.Record)

// Watcher follows one config file of one server.
type Watcher struct {
	store      *store.Store
	serverPath string
	schema     *schema.Schema
	formatID   string
	debounce   time.Duration
	logger     zerolog.Logger
}

// New creates a watcher for the config file of s below serverPath.
func New(st *store.Store, serverPath string, s *schema.Schema, formatID string) *Watcher {
	return &Watcher{
		store:      st,
		serverPath: serverPath,
		schema:     s,
		formatID:   formatID,
		debounce:   DefaultDebounce,
		logger:     xglog.WithComponent("watch"),
	}
}

// WithDebounce sets the quiet period before a reload.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Run reads the config once, then again after every change, passing each
// record to fn. The parent directory is watched so that atomic replacements
// are seen. Run returns when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	path, err := w.store.Path(w.serverPath, w.schema)
	if err != nil {
		return err
	}
	path = filepath.Clean(path)

	rec, err := w.store.Load(ctx, w.serverPath, w.schema, w.formatID)
	if err != nil {
		return fmt.Errorf("initial read: %w", err)
	}
	fn(rec)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}

	logger := w.logger.With().Str(xglog.FieldPath, path).Logger()
	logger.Info().Str(xglog.FieldEvent, "config.watcher_started").Msg("watching config file for changes")

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
			logger.Info().Str(xglog.FieldEvent, "config.watcher_stopped").Msg("config watcher stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug().
				Str(xglog.FieldEvent, "config.file_changed").
				Str("op", event.Op.String()).
				Msg("config file changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			rec, err := w.store.Load(ctx, w.serverPath, w.schema, w.formatID)
			if err != nil {
				logger.Error().Err(err).
					Str(xglog.FieldEvent, "config.auto_reload_failed").
					Msg("re-reading changed config failed")
				continue
			}
			fn(rec)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).
				Str(xglog.FieldEvent, "config.watcher_error").
				Msg("config watcher error")
		}
	}
}
