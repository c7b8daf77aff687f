// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package api

import (
	"errors"
	"net/http"

	"github.com/colaborador-ia/colaborador/internal/logging"
	"github.com/colaborador-ia/colaborador/internal/recommend"
)

// Recommendation ranks candidate collaborators.
//
// @Summary Recommend collaborators
// @Description Ranks authors by topical similarity to a concept vector, by proximity to a seed author in the co-authorship graph, or by a weighted blend of both.
// @Tags Recommendation
// @Accept json
// @Produce json
// @Param request body recommend.Request true "Concept vector and/or seed author"
// @Success 200 {object} recommend.Response
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 503 {object} models.APIResponse "No snapshot loaded"
// @Failure 504 {object} models.APIResponse "Scoring timed out"
// @Router /recommendation/ [post]
func (h *Handler) Recommendation(w http.ResponseWriter, r *http.Request) {
	var req recommend.Request
	if err := decodeJSONBody(w, r, h.maxBodyBytes(), &req); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		respondError(w, status, "BAD_REQUEST", err.Error(), err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	req.RequestID = logging.RequestIDFromContext(r.Context())
	resp, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		respondClassified(w, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("mode", resp.Metadata.Mode).
		Int("returned", len(resp.Recommendations)).
		Int("total", resp.TotalRecommendations).
		Bool("cache_hit", resp.Metadata.CacheHit).
		Msg("Recommendation served")

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, resp)
}
