// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/colaborador-ia/colaborador/internal/metrics"
	"github.com/colaborador-ia/colaborador/internal/persist"
	"github.com/colaborador-ia/colaborador/internal/recommend"
	"github.com/colaborador-ia/colaborador/internal/snapshot"
	"github.com/colaborador-ia/colaborador/internal/source"
)

// ErrRefreshThrottled is returned by Trigger when the previous triggered
// refresh was too recent.
var ErrRefreshThrottled = errors.New("snapshot refresh throttled")

// Persister stores the last good dataset. *persist.Store implements it.
type Persister interface {
	Save(data *snapshot.Data) (persist.Meta, error)
	Load() (*snapshot.Data, persist.Meta, error)
}

// CacheInvalidator drops derived results after a swap. *recommend.Engine
// implements it.
type CacheInvalidator interface {
	InvalidateCache()
}

// Options tunes a Refresher.
type Options struct {
	// EdgeWeighting is passed to snapshot.Build.
	EdgeWeighting snapshot.EdgeWeighting

	// LoadTimeout bounds one load and build. Zero means no extra bound.
	LoadTimeout time.Duration

	// MinTriggerInterval rate-limits Trigger. Zero disables throttling.
	MinTriggerInterval time.Duration
}

// Status reports the refresher's recent history.
type Status struct {
	Source      string    `json:"source"`
	LastAttempt time.Time `json:"last_attempt,omitempty"`
	LastSuccess time.Time `json:"last_success,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
	LastReason  string    `json:"last_reason,omitempty"`
	Restored    bool      `json:"restored_from_persist"`
	Refreshes   int64     `json:"refreshes"`
	Failures    int64     `json:"failures"`
}

// Refresher loads data from a source, builds a snapshot and swaps it into
// the store. Refreshes are serialized; readers are never blocked because the
// store swaps a pointer.
type Refresher struct {
	source    source.Source
	store     *snapshot.Store
	persister Persister
	opts      Options
	limiter   *rate.Limiter
	logger    zerolog.Logger

	invalidatorMu sync.RWMutex
	invalidator   CacheInvalidator

	runMu sync.Mutex // serializes Refresh

	statusMu sync.RWMutex
	status   Status
}

// New creates a Refresher. persister may be nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(src source.Source, store *snapshot.Store, persister Persister, opts Options, logger zerolog.Logger) *Refresher {
	limit := rate.Inf
	if opts.MinTriggerInterval > 0 {
		limit = rate.Every(opts.MinTriggerInterval)
	}
	return &Refresher{
		source:    src,
		store:     store,
		persister: persister,
		opts:      opts,
		limiter:   rate.NewLimiter(limit, 1),
		logger:    logger.With().Str("component", "refresh").Logger(),
		status:    Status{Source: src.Name()},
	}
}

// SetInvalidator registers the cache to drop after every swap.
func (r *Refresher) SetInvalidator(inv CacheInvalidator) {
	r.invalidatorMu.Lock()
	r.invalidator = inv
	r.invalidatorMu.Unlock()
}

// Status returns a copy of the current status.
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

// Refresh loads, builds and swaps a new snapshot. On failure the current
// snapshot stays in place.
func (r *Refresher) Refresh(ctx context.Context, reason string) (snapshot.Stats, error) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	if r.opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.LoadTimeout)
		defer cancel()
	}

	start := time.Now()
	r.recordAttempt(start, reason)

	data, err := r.source.Load(ctx)
	if err == nil {
		var snap *snapshot.Snapshot
		snap, err = snapshot.Build(data, snapshot.BuildOptions{EdgeWeighting: r.opts.EdgeWeighting})
		if err == nil {
			stats := r.swap(snap, false)
			metrics.RecordSnapshotLoad(r.source.Name(), "success", time.Since(start))
			r.persist(data)
			r.logger.Info().
				Str("reason", reason).
				Str("version", stats.Version).
				Int("authors", stats.Authors).
				Int("concepts", stats.Concepts).
				Int("edges", stats.Edges).
				Dur("duration", time.Since(start)).
				Msg("Snapshot refreshed")
			return stats, nil
		}
		err = fmt.Errorf("build snapshot: %w", err)
	}

	metrics.RecordSnapshotLoad(r.source.Name(), "failure", time.Since(start))
	r.recordFailure(err)
	r.logger.Error().Err(err).Str("reason", reason).Msg("Snapshot refresh failed")
	return snapshot.Stats{}, err
}

// Trigger is Refresh behind a token bucket, for external triggers (admin
// endpoint, NATS messages, file events).
func (r *Refresher) Trigger(ctx context.Context, reason string) (snapshot.Stats, error) {
	if !r.limiter.Allow() {
		metrics.RecordSnapshotLoad(r.source.Name(), "throttled", 0)
		r.logger.Debug().Str("reason", reason).Msg("Snapshot refresh throttled")
		return snapshot.Stats{}, ErrRefreshThrottled
	}
	return r.Refresh(ctx, reason)
}

// Warm loads the first snapshot at startup. When the source fails it falls
// back to the persisted dataset. When both fail the error wraps
// recommend.ErrSnapshotUnavailable and the store stays empty.
func (r *Refresher) Warm(ctx context.Context) (snapshot.Stats, error) {
	stats, err := r.Refresh(ctx, "startup")
	if err == nil {
		return stats, nil
	}
	if r.persister == nil {
		return snapshot.Stats{}, fmt.Errorf("%w: %w", recommend.ErrSnapshotUnavailable, err)
	}

	data, meta, perr := r.persister.Load()
	if perr != nil {
		return snapshot.Stats{}, fmt.Errorf("%w: source: %w; persisted: %w", recommend.ErrSnapshotUnavailable, err, perr)
	}
	snap, berr := snapshot.Build(data, snapshot.BuildOptions{EdgeWeighting: r.opts.EdgeWeighting})
	if berr != nil {
		return snapshot.Stats{}, fmt.Errorf("%w: source: %w; persisted: %w", recommend.ErrSnapshotUnavailable, err, berr)
	}

	stats = r.swap(snap, true)
	metrics.RecordSnapshotLoad("persist", "success", 0)
	r.logger.Warn().
		Err(err).
		Str("version", meta.Version).
		Time("saved_at", meta.SavedAt).
		Msg("Source unavailable, serving persisted snapshot")
	return stats, nil
}

func (r *Refresher) swap(snap *snapshot.Snapshot, restored bool) snapshot.Stats {
	r.store.Swap(snap)

	r.invalidatorMu.RLock()
	inv := r.invalidator
	r.invalidatorMu.RUnlock()
	if inv != nil {
		inv.InvalidateCache()
	}

	stats := snap.Stats()
	now := time.Now()
	metrics.UpdateSnapshotGauges(stats.Concepts, stats.Authors, stats.Edges, now)

	r.statusMu.Lock()
	r.status.LastSuccess = now
	r.status.LastError = ""
	r.status.Restored = restored
	r.status.Refreshes++
	r.statusMu.Unlock()
	return stats
}

// persist saves data without failing the refresh.
func (r *Refresher) persist(data *snapshot.Data) {
	if r.persister == nil {
		return
	}
	if _, err := r.persister.Save(data); err != nil {
		r.logger.Warn().Err(err).Str("version", data.Version).Msg("Failed to persist snapshot")
	}
}

func (r *Refresher) recordAttempt(at time.Time, reason string) {
	r.statusMu.Lock()
	r.status.LastAttempt = at
	r.status.LastReason = reason
	r.statusMu.Unlock()
}

func (r *Refresher) recordFailure(err error) {
	r.statusMu.Lock()
	r.status.LastError = err.Error()
	r.status.Failures++
	r.statusMu.Unlock()
}
