// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/colaborador-ia/colaborador/internal/models"
	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

// defaultAuthorConcepts is the number of concepts in an author profile.
const defaultAuthorConcepts = 10

// currentSnapshot returns the active snapshot or answers 503.
func (h *Handler) currentSnapshot(w http.ResponseWriter) *snapshot.Snapshot {
	snap := h.store.Current()
	if snap == nil {
		respondError(w, http.StatusServiceUnavailable, "SNAPSHOT_UNAVAILABLE",
			"No snapshot loaded yet, retry later", nil)
	}
	return snap
}

// ConceptSearch autocompletes concept names.
//
// @Summary Search concepts
// @Description Prefix matches first, then names containing the query. An empty query returns an empty list.
// @Tags Catalog
// @Produce json
// @Param search query string true "Name fragment"
// @Param limit query int false "Maximum results (default 20, max 100)"
// @Success 200 {object} models.APIResponse{data=[]models.ConceptResult}
// @Failure 503 {object} models.APIResponse
// @Router /concept/ [get]
func (h *Handler) ConceptSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	snap := h.currentSnapshot(w)
	if snap == nil {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("search"))
	concepts := snap.Catalog().Search(query, getIntParam(r, "limit", snapshot.DefaultSearchLimit))

	results := make([]models.ConceptResult, len(concepts))
	for i, c := range concepts {
		results[i] = models.ConceptResult{ID: c.ID, DisplayName: c.DisplayName, Level: c.Level}
	}

	respondSuccess(w, results, models.Metadata{
		QueryTimeMS:     time.Since(start).Milliseconds(),
		SnapshotVersion: snap.Version(),
		Count:           len(results),
	})
}

// AuthorSearch autocompletes author names, including alternative names.
//
// @Summary Search authors
// @Tags Catalog
// @Produce json
// @Param search query string true "Name fragment"
// @Param limit query int false "Maximum results (default 20, max 100)"
// @Success 200 {object} models.APIResponse{data=[]models.AuthorSummary}
// @Failure 503 {object} models.APIResponse
// @Router /authorsearch/ [get]
func (h *Handler) AuthorSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	snap := h.currentSnapshot(w)
	if snap == nil {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("search"))
	authors := snap.SearchAuthors(query, getIntParam(r, "limit", snapshot.DefaultSearchLimit))

	results := make([]models.AuthorSummary, len(authors))
	for i := range authors {
		a := &authors[i]
		results[i] = models.AuthorSummary{
			ID:              a.ID,
			DisplayName:     a.DisplayName,
			CountryCode:     a.CountryCode,
			InstitutionName: snap.InstitutionName(a.InstitutionID),
		}
	}

	respondSuccess(w, results, models.Metadata{
		QueryTimeMS:     time.Since(start).Milliseconds(),
		SnapshotVersion: snap.Version(),
		Count:           len(results),
	})
}

// authorID reads the id from the path, falling back to ?id=.
func authorID(r *http.Request) string {
	if id := chi.URLParam(r, "id"); id != "" {
		return strings.TrimSpace(id)
	}
	return strings.TrimSpace(r.URL.Query().Get("id"))
}

// Author returns an author profile.
//
// @Summary Get author profile
// @Tags Catalog
// @Produce json
// @Param id path string true "Author ID"
// @Success 200 {object} models.APIResponse{data=models.AuthorProfile}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /authors/{id} [get]
func (h *Handler) Author(w http.ResponseWriter, r *http.Request) {
	id := authorID(r)
	if id == "" {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Author id is required", nil)
		return
	}

	snap := h.currentSnapshot(w)
	if snap == nil {
		return
	}

	author, ok := snap.Author(id)
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Author not found: "+id, nil)
		return
	}

	profile := models.AuthorProfile{
		ID:                      author.ID,
		ORCID:                   author.ORCID,
		DisplayName:             author.DisplayName,
		DisplayNameAlternatives: author.DisplayNameAlternatives,
		CountryCode:             author.CountryCode,
		WorksCount:              author.WorksCount,
		CitedByCount:            author.CitedByCount,
		TopConcepts:             authorConcepts(snap, author.ID, defaultAuthorConcepts),
	}
	if inst, ok := snap.Institution(author.InstitutionID); ok {
		profile.Institution = &models.InstitutionView{
			ID:          inst.ID,
			DisplayName: inst.DisplayName,
			CountryCode: inst.CountryCode,
		}
	}
	if i, ok := snap.AuthorIndex(author.ID); ok {
		profile.Collaborators = snap.Degree(i)
	}

	respondSuccess(w, profile, models.Metadata{SnapshotVersion: snap.Version()})
}

// AuthorConcepts returns an author's strongest concepts.
//
// @Summary Get author concepts
// @Tags Catalog
// @Produce json
// @Param id path string true "Author ID"
// @Param limit query int false "Maximum concepts (default 10, 0 for all)"
// @Success 200 {object} models.APIResponse{data=[]models.AuthorConcept}
// @Failure 404 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /authors/{id}/concepts/ [get]
func (h *Handler) AuthorConcepts(w http.ResponseWriter, r *http.Request) {
	id := authorID(r)
	snap := h.currentSnapshot(w)
	if snap == nil {
		return
	}

	if _, ok := snap.AuthorIndex(id); !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Author not found: "+id, nil)
		return
	}

	concepts := authorConcepts(snap, id, getIntParam(r, "limit", defaultAuthorConcepts))
	respondSuccess(w, concepts, models.Metadata{
		SnapshotVersion: snap.Version(),
		Count:           len(concepts),
	})
}

// authorConcepts resolves display names for an author's top n concepts.
func authorConcepts(snap *snapshot.Snapshot, id string, n int) []models.AuthorConcept {
	affinities, _ := snap.AuthorTopConcepts(id, n)
	out := make([]models.AuthorConcept, 0, len(affinities))
	for _, a := range affinities {
		name := a.ConceptID
		if c, ok := snap.Catalog().Lookup(a.ConceptID); ok {
			name = c.DisplayName
		}
		out = append(out, models.AuthorConcept{ConceptID: a.ConceptID, DisplayName: name, Score: a.Weight})
	}
	return out
}

// Institution looks up an institution by id.
//
// @Summary Get institution
// @Tags Catalog
// @Produce json
// @Param id query string true "Institution ID"
// @Success 200 {object} models.APIResponse{data=models.InstitutionView}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /institution/ [get]
func (h *Handler) Institution(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Institution id is required", nil)
		return
	}

	snap := h.currentSnapshot(w)
	if snap == nil {
		return
	}

	inst, ok := snap.Institution(id)
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Institution not found: "+id, nil)
		return
	}

	respondSuccess(w, models.InstitutionView{
		ID:          inst.ID,
		DisplayName: inst.DisplayName,
		CountryCode: inst.CountryCode,
	}, models.Metadata{SnapshotVersion: snap.Version()})
}
