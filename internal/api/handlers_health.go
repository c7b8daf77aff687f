// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package api

import (
	"net/http"
	"time"

	"github.com/colaborador-ia/colaborador/internal/models"
)

// Health reports liveness. It answers 200 even before a snapshot is loaded.
//
// @Summary Health check
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := models.HealthStatus{
		Status:  "degraded",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}
	if snap := h.store.Current(); snap != nil {
		health.Status = "healthy"
		health.SnapshotLoaded = true
		health.SnapshotVersion = snap.Version()
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Ready reports readiness: 503 until the first snapshot is loaded.
//
// @Summary Readiness check
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /health/ready [get]
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.store.Loaded() {
		respondError(w, http.StatusServiceUnavailable, "SNAPSHOT_UNAVAILABLE", "Snapshot not loaded", nil)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "ready"},
		Metadata: models.Metadata{Timestamp: time.Now(), SnapshotVersion: h.store.Current().Version()},
	})
}

// SnapshotInfo describes the active snapshot.
//
// @Summary Snapshot status
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.SnapshotInfo}
// @Router /snapshot [get]
func (h *Handler) SnapshotInfo(w http.ResponseWriter, r *http.Request) {
	info := models.SnapshotInfo{}
	if snap := h.store.Current(); snap != nil {
		stats := snap.Stats()
		builtAt := stats.BuiltAt
		info = models.SnapshotInfo{
			Loaded:       true,
			Version:      stats.Version,
			BuiltAt:      &builtAt,
			Concepts:     stats.Concepts,
			Institutions: stats.Institutions,
			Authors:      stats.Authors,
			Edges:        stats.Edges,
		}
	}
	if h.refresher != nil {
		info.Refresh = h.refresher.Status()
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     info,
		Metadata: models.Metadata{Timestamp: time.Now(), SnapshotVersion: info.Version},
	})
}

// RefreshSnapshot rebuilds the snapshot from the configured source.
//
// @Summary Refresh snapshot
// @Description Triggered refreshes share a rate limit with NATS and file-watch triggers.
// @Tags Admin
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.SnapshotInfo}
// @Failure 429 {object} models.APIResponse "Refresh throttled"
// @Failure 500 {object} models.APIResponse
// @Router /admin/snapshot/refresh [post]
func (h *Handler) RefreshSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Snapshot refresh is not configured", nil)
		return
	}

	start := time.Now()
	stats, err := h.refresher.Trigger(r.Context(), "admin")
	if err != nil {
		status, apiErr := classifyError(err)
		if status == http.StatusInternalServerError {
			apiErr.Code = "REFRESH_FAILED"
			apiErr.Message = "Snapshot refresh failed, the previous snapshot stays active"
		}
		respondAPIError(w, status, apiErr, err)
		return
	}

	builtAt := stats.BuiltAt
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.SnapshotInfo{
			Loaded:       true,
			Version:      stats.Version,
			BuiltAt:      &builtAt,
			Concepts:     stats.Concepts,
			Institutions: stats.Institutions,
			Authors:      stats.Authors,
			Edges:        stats.Edges,
		},
		Metadata: models.Metadata{
			Timestamp:       time.Now(),
			QueryTimeMS:     time.Since(start).Milliseconds(),
			SnapshotVersion: stats.Version,
		},
	})
}

// Performance returns per-route latency percentiles.
//
// @Summary Request performance
// @Tags Admin
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]middleware.EndpointStats}
// @Router /admin/performance [get]
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	if h.perf == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Performance monitoring is disabled", nil)
		return
	}
	stats := h.perf.Stats()
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     stats,
		Metadata: models.Metadata{Timestamp: time.Now(), Count: len(stats)},
	})
}
