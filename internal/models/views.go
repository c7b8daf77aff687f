// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package models

import "time"

// ConceptResult is one concept autocomplete entry.
type ConceptResult struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Level       int    `json:"level"`
}

// InstitutionView is an institution as returned by the lookup endpoint.
type InstitutionView struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code,omitempty"`
}

// AuthorSummary is one author autocomplete entry.
type AuthorSummary struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	CountryCode     string `json:"country_code,omitempty"`
	InstitutionName string `json:"institution_name,omitempty"`
}

// AuthorConcept is one concept of an author profile.
type AuthorConcept struct {
	ConceptID   string  `json:"concept_id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
}

// AuthorProfile is an author with denormalized institution and degree.
type AuthorProfile struct {
	ID                      string           `json:"id"`
	ORCID                   string           `json:"orcid,omitempty"`
	DisplayName             string           `json:"display_name"`
	DisplayNameAlternatives []string         `json:"display_name_alternatives,omitempty"`
	CountryCode             string           `json:"country_code,omitempty"`
	Institution             *InstitutionView `json:"institution,omitempty"`
	WorksCount              int64            `json:"works_count"`
	CitedByCount            int64            `json:"cited_by_count"`
	Collaborators           int              `json:"collaborators"`
	TopConcepts             []AuthorConcept  `json:"top_concepts"`
}

// HealthStatus is the liveness report.
type HealthStatus struct {
	Status          string  `json:"status"` // "healthy" or "degraded"
	Version         string  `json:"version"`
	SnapshotLoaded  bool    `json:"snapshot_loaded"`
	SnapshotVersion string  `json:"snapshot_version,omitempty"`
	Uptime          float64 `json:"uptime_seconds"`
}

// SnapshotInfo describes the active snapshot and the refresher state.
type SnapshotInfo struct {
	Loaded       bool       `json:"loaded"`
	Version      string     `json:"version,omitempty"`
	BuiltAt      *time.Time `json:"built_at,omitempty"`
	Concepts     int        `json:"concepts"`
	Institutions int        `json:"institutions"`
	Authors      int        `json:"authors"`
	Edges        int        `json:"edges"`

	// Refresh is the refresher status, when a refresher is configured.
	Refresh interface{} `json:"refresh,omitempty"`
}
