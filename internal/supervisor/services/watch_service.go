// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/colaborador-ia/colaborador/internal/refresh"
	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

// SnapshotTrigger starts a rate-limited snapshot refresh.
type SnapshotTrigger interface {
	Trigger(ctx context.Context, reason string) (snapshot.Stats, error)
}

// WatchService triggers a refresh when the snapshot file changes.
//
// The parent directory is watched rather than the file, so a bundle
// replaced by an atomic rename is still seen. Bursts of events are
// coalesced by debounce. A throttled trigger is retried after retry,
// so the last change is never lost.
type WatchService struct {
	path     string
	trigger  SnapshotTrigger
	debounce time.Duration
	retry    time.Duration
	logger   zerolog.Logger
	name     string
}

// NewWatchService creates a watcher for the file at path.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWatchService(path string, trigger SnapshotTrigger, debounce time.Duration, logger zerolog.Logger) *WatchService {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &WatchService{
		path:     path,
		trigger:  trigger,
		debounce: debounce,
		retry:    15 * time.Second,
		logger:   logger.With().Str("service", "snapshot-watcher").Str("path", path).Logger(),
		name:     "snapshot-watcher",
	}
}

// Serve implements suture.Service.
func (w *WatchService) Serve(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	dir, base := filepath.Dir(w.path), filepath.Base(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info().Dur("debounce", w.debounce).Msg("snapshot watcher running")

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	arm := func(d time.Duration) {
		if timer == nil {
			timer = time.NewTimer(d)
		} else {
			timer.Reset(d)
		}
		timerC = timer.C
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return errors.New("file watcher closed")
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				arm(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("file watcher closed")
			}
			w.logger.Warn().Err(err).Msg("file watcher error")

		case <-timerC:
			timerC = nil
			if w.fire(ctx) {
				arm(w.retry)
			}
		}
	}
}

// fire triggers a refresh and reports whether it should be retried.
func (w *WatchService) fire(ctx context.Context) bool {
	stats, err := w.trigger.Trigger(ctx, "file-watch")
	switch {
	case err == nil:
		w.logger.Info().Str("version", stats.Version).Msg("snapshot reloaded after file change")
		return false
	case errors.Is(err, refresh.ErrRefreshThrottled):
		w.logger.Debug().Dur("retry", w.retry).Msg("file change refresh throttled")
		return true
	default:
		w.logger.Warn().Err(err).Msg("file change refresh failed")
		return false
	}
}

// String implements fmt.Stringer for suture logs.
func (w *WatchService) String() string {
	return w.name
}
