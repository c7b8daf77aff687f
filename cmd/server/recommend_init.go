// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package main

import (
	"context"
	"fmt"

	"github.com/colaborador-ia/colaborador/internal/config"
	"github.com/colaborador-ia/colaborador/internal/logging"
	"github.com/colaborador-ia/colaborador/internal/persist"
	"github.com/colaborador-ia/colaborador/internal/recommend"
	"github.com/colaborador-ia/colaborador/internal/refresh"
	"github.com/colaborador-ia/colaborador/internal/snapshot"
	"github.com/colaborador-ia/colaborador/internal/source"
)

// SnapshotComponents holds the dataset pipeline and the engine reading it.
type SnapshotComponents struct {
	Store     *snapshot.Store
	Source    source.Source
	Persist   *persist.Store
	Refresher *refresh.Refresher
	Engine    *recommend.Engine
}

// Close releases the persistence store.
func (c *SnapshotComponents) Close() {
	if c == nil || c.Persist == nil {
		return
	}
	if err := c.Persist.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing snapshot persistence")
	}
}

// newEngineConfig maps the recommend config section onto the engine config.
func newEngineConfig(rc *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		Blend: recommend.BlendConfig{
			DefaultAlpha: rc.DefaultAlpha,
			DefaultBeta:  rc.DefaultBeta,
		},
		ContentBased: recommend.ContentBasedConfig{
			TopConcepts: rc.TopConcepts,
		},
		Collaborative: recommend.CollaborativeConfig{
			NumHops:     rc.NumHops,
			DecayFactor: rc.DecayFactor,
			MaxFrontier: rc.MaxFrontier,
		},
		Limits: recommend.LimitsConfig{
			DefaultLimit:      rc.DefaultLimit,
			MaxLimit:          rc.MaxLimit,
			PredictionTimeout: rc.PredictionTimeout,
			MaxConceptVector:  rc.MaxConceptVector,
		},
		Cache: recommend.CacheConfig{
			Enabled:    rc.CacheEnabled,
			TTL:        rc.CacheTTL,
			MaxEntries: rc.CacheMaxEntries,
		},
	}
}

// initSnapshot builds the source, persistence, refresher and engine.
// A failing persistence directory is logged and skipped; the service then
// simply cannot warm-start from disk.
func initSnapshot(cfg *config.Config) (*SnapshotComponents, error) {
	src, err := source.New(&cfg.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("create snapshot source: %w", err)
	}

	components := &SnapshotComponents{
		Store:  snapshot.NewStore(),
		Source: src,
	}

	var persister refresh.Persister
	if cfg.Snapshot.PersistPath != "" {
		ps, err := persist.Open(cfg.Snapshot.PersistPath, logging.WithComponent("persist"))
		if err != nil {
			logging.Warn().Err(err).Str("path", cfg.Snapshot.PersistPath).
				Msg("Snapshot persistence disabled")
		} else {
			components.Persist = ps
			persister = ps
		}
	}

	components.Refresher = refresh.New(src, components.Store, persister, refresh.Options{
		EdgeWeighting:      snapshot.EdgeWeighting(cfg.Snapshot.EdgeWeighting),
		LoadTimeout:        cfg.Snapshot.LoadTimeout,
		MinTriggerInterval: cfg.Snapshot.MinRefreshInterval,
	}, logging.WithComponent("refresh"))

	engine, err := recommend.NewEngine(newEngineConfig(&cfg.Recommend), components.Store,
		logging.WithComponent("recommend"))
	if err != nil {
		components.Close()
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	components.Engine = engine
	components.Refresher.SetInvalidator(engine)

	logging.Info().
		Str("source", src.Name()).
		Bool("persistence", components.Persist != nil).
		Float64("default_alpha", cfg.Recommend.DefaultAlpha).
		Float64("default_beta", cfg.Recommend.DefaultBeta).
		Int("num_hops", cfg.Recommend.NumHops).
		Msg("Recommendation engine initialized")

	return components, nil
}

// warmSnapshot loads the first snapshot. Failure is not fatal: the server
// starts, readiness reports 503 and the scheduler or a trigger retries.
func warmSnapshot(ctx context.Context, c *SnapshotComponents) {
	stats, err := c.Refresher.Warm(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("No snapshot available at startup; serving 503 until a refresh succeeds")
		return
	}
	logging.Info().
		Str("version", stats.Version).
		Int("authors", stats.Authors).
		Int("concepts", stats.Concepts).
		Int("edges", stats.Edges).
		Msg("Snapshot loaded")
}
