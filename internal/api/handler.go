// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package api

import (
	"context"
	"time"

	"github.com/colaborador-ia/colaborador/internal/config"
	"github.com/colaborador-ia/colaborador/internal/middleware"
	"github.com/colaborador-ia/colaborador/internal/recommend"
	"github.com/colaborador-ia/colaborador/internal/refresh"
	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

// Recommender answers recommendation requests. *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// SnapshotRefresher rebuilds the snapshot on demand. *refresh.Refresher implements it.
type SnapshotRefresher interface {
	Trigger(ctx context.Context, reason string) (snapshot.Stats, error)
	Status() refresh.Status
}

// Handler serves every API endpoint.
type Handler struct {
	engine    Recommender
	store     *snapshot.Store
	refresher SnapshotRefresher
	perf      *middleware.PerformanceMonitor
	config    *config.Config
	version   string
	startTime time.Time
}

// HandlerDeps groups the collaborators of a Handler. Refresher and Perf are
// optional; the endpoints that need them answer 404 when they are nil.
type HandlerDeps struct {
	Engine    Recommender
	Store     *snapshot.Store
	Refresher SnapshotRefresher
	Perf      *middleware.PerformanceMonitor
	Config    *config.Config
	Version   string
}

// NewHandler creates a new API handler.
func NewHandler(deps HandlerDeps) *Handler {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		engine:    deps.Engine,
		store:     deps.Store,
		refresher: deps.Refresher,
		perf:      deps.Perf,
		config:    deps.Config,
		version:   version,
		startTime: time.Now(),
	}
}

// maxBodyBytes returns the request body cap.
func (h *Handler) maxBodyBytes() int64 {
	if h.config == nil {
		return 1 << 20
	}
	return h.config.Security.MaxBodyBytes
}
