// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package snapshot

import "time"

// Concept is a taxonomy node such as "Machine Learning".
type Concept struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	// Level is the depth in the hierarchy; root concepts are level 0.
	Level int `json:"level"`
}

// Institution is an author's last known affiliation.
type Institution struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code,omitempty"`
}

// Author is one researcher profile.
type Author struct {
	ID                      string   `json:"id"`
	ORCID                   string   `json:"orcid,omitempty"`
	DisplayName             string   `json:"display_name"`
	DisplayNameAlternatives []string `json:"display_name_alternatives,omitempty"`
	InstitutionID           string   `json:"institution_id,omitempty"`
	CountryCode             string   `json:"country_code,omitempty"`
	WorksCount              int64    `json:"works_count"`
	CitedByCount            int64    `json:"cited_by_count"`

	// ConceptAffinity is the author's sparse topical profile (concept id -> weight).
	ConceptAffinity map[string]float64 `json:"concept_affinity,omitempty"`
}

// Coauthorship is one raw co-authorship row. Rows are unordered pairs; the
// same pair may appear more than once.
type Coauthorship struct {
	AuthorA     string  `json:"author_a"`
	AuthorB     string  `json:"author_b"`
	SharedWorks float64 `json:"shared_works"`
}

// Data is the mutable input bundle a source produces.
type Data struct {
	Version       string         `json:"version"`
	Concepts      []Concept      `json:"concepts"`
	Institutions  []Institution  `json:"institutions,omitempty"`
	Authors       []Author       `json:"authors"`
	Coauthorships []Coauthorship `json:"coauthorships,omitempty"`
}

// Posting is one entry of the concept -> author inverted index.
type Posting struct {
	Author int
	Weight float64
}

// Edge is one adjacency entry of the collaboration graph.
type Edge struct {
	To     int
	Weight float64
}

// Affinity is one non-zero dimension of an author's concept vector.
type Affinity struct {
	ConceptID string  `json:"concept_id"`
	Weight    float64 `json:"weight"`
}

// Stats summarizes a snapshot.
type Stats struct {
	Version      string    `json:"version"`
	BuiltAt      time.Time `json:"built_at"`
	Concepts     int       `json:"concepts"`
	Institutions int       `json:"institutions"`
	Authors      int       `json:"authors"`
	Edges        int       `json:"edges"`
}
