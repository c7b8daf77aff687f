// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

// SnapshotRefresher rebuilds the active snapshot.
type SnapshotRefresher interface {
	Refresh(ctx context.Context, reason string) (snapshot.Stats, error)
}

// RefreshScheduler rebuilds the snapshot on a fixed interval.
//
// A failed rebuild is logged and the previous snapshot stays active; the
// next tick tries again. Failures are never returned to suture, since a
// restart would only reset the ticker.
type RefreshScheduler struct {
	refresher SnapshotRefresher
	interval  time.Duration
	logger    zerolog.Logger
	name      string
}

// NewRefreshScheduler creates the scheduler. interval must be positive;
// callers skip the service when periodic refresh is disabled.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshScheduler(refresher SnapshotRefresher, interval time.Duration, logger zerolog.Logger) *RefreshScheduler {
	return &RefreshScheduler{
		refresher: refresher,
		interval:  interval,
		logger:    logger.With().Str("service", "snapshot-scheduler").Logger(),
		name:      "snapshot-scheduler",
	}
}

// Serve implements suture.Service.
func (s *RefreshScheduler) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("snapshot scheduler running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			stats, err := s.refresher.Refresh(ctx, "scheduled")
			if err != nil {
				s.logger.Warn().Err(err).Msg("scheduled snapshot refresh failed")
				continue
			}
			s.logger.Debug().Str("version", stats.Version).Msg("scheduled snapshot refresh complete")
		}
	}
}

// String implements fmt.Stringer for suture logs.
func (s *RefreshScheduler) String() string {
	return s.name
}
