// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package recommend

import (
	"time"
)

// Mode is the scoring strategy chosen from the request shape.
type Mode int

const (
	// ModeInvalid means neither concepts nor a seed author were supplied.
	ModeInvalid Mode = iota
	// ModeConcepts runs the content-based scorer only.
	ModeConcepts
	// ModeAuthor runs the collaborative scorer only.
	ModeAuthor
	// ModeHybrid runs both scorers and blends them.
	ModeHybrid
)

// String returns the name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeConcepts:
		return "concepts"
	case ModeAuthor:
		return "author"
	case ModeHybrid:
		return "hybrid"
	default:
		return "invalid"
	}
}

// ModeOf classifies a request. It is a pure function of the request shape:
// a concept vector counts as present when it has at least one entry, even if
// none of its ids are known.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func ModeOf(req Request) Mode {
	hasConcepts := len(req.ConceptVector) > 0
	hasAuthor := req.AuthorID != ""
	switch {
	case hasConcepts && hasAuthor:
		return ModeHybrid
	case hasConcepts:
		return ModeConcepts
	case hasAuthor:
		return ModeAuthor
	default:
		return ModeInvalid
	}
}

// OrderBy selects the sort key of the result pipeline.
type OrderBy string

const (
	OrderSimilarity    OrderBy = "similarity"
	OrderCitationCount OrderBy = "citation_count"
	OrderWorkCount     OrderBy = "work_count"
)

// Valid reports whether o is a known ordering. The empty value is not valid;
// callers substitute OrderSimilarity first.
func (o OrderBy) Valid() bool {
	switch o {
	case OrderSimilarity, OrderCitationCount, OrderWorkCount:
		return true
	default:
		return false
	}
}

// ConceptWeight is one entry of the query concept vector.
type ConceptWeight struct {
	// ID is matched against the catalog; ids it does not know, including
	// the empty string, are reported in metadata.ignored_concepts.
	ID string `json:"id"`

	// DisplayName is echoed by clients; it is not used for scoring.
	DisplayName string `json:"display_name,omitempty"`

	// Weight defaults to 1 when omitted.
	Weight *float64 `json:"weight,omitempty"`
}

// Request represents a recommendation request.
type Request struct {
	// ConceptVector is the topical query. Unknown concept ids are ignored.
	ConceptVector []ConceptWeight `json:"concept_vector" validate:"max=200,dive"`

	// AuthorID is the optional seed author for network scoring.
	AuthorID string `json:"author_id,omitempty" validate:"max=128"`

	// Alpha and Beta weigh the CB and CF scores in hybrid mode.
	// Default: 0.5 each. They are not renormalized.
	Alpha *float64 `json:"alpha,omitempty"`
	Beta  *float64 `json:"beta,omitempty"`

	// OrderBy defaults to similarity.
	OrderBy OrderBy `json:"order_by,omitempty"`

	// Limit defaults to 50 and is clamped to [1, 200].
	Limit *int `json:"limit,omitempty"`

	// CountryCode restricts results to one Latin American country.
	CountryCode string `json:"country_code,omitempty" validate:"omitempty,countrycode"`

	// RequestID is set by the transport layer for tracing.
	RequestID string `json:"-"`
}

// TopConcept is a query concept contributing to an author's CB score.
type TopConcept struct {
	ConceptID   string  `json:"concept_id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
}

// Recommendation is one recommended author with denormalized display fields.
type Recommendation struct {
	AuthorID        string `json:"author_id"`
	ORCID           string `json:"orcid"`
	DisplayName     string `json:"display_name"`
	CountryCode     string `json:"country_code"`
	InstitutionName string `json:"institution_name"`

	// SimilarityScore is the blended (or single-model) score in [0, 1].
	SimilarityScore float64 `json:"similarity_score"`

	// CBScore and CFScore are the normalized per-model scores, 0 when the
	// model was not run or did not score this author.
	CBScore float64 `json:"cb_score"`
	CFScore float64 `json:"cf_score"`

	// CBZScore and CFZScore are the standardized raw scores (diagnostic).
	CBZScore float64 `json:"cb_zscore"`
	CFZScore float64 `json:"cf_zscore"`

	WorksCount   int64 `json:"works_count"`
	CitedByCount int64 `json:"cited_by_count"`

	TopConcepts []TopConcept `json:"top_concepts"`
}

// Response is the result of one recommendation request.
type Response struct {
	Recommendations []Recommendation `json:"recommendations"`

	// TotalRecommendations counts results after filtering, before the limit.
	TotalRecommendations int `json:"total_recommendations"`

	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains request processing information.
type ResponseMetadata struct {
	RequestID       string    `json:"request_id,omitempty"`
	Mode            string    `json:"mode"`
	SnapshotVersion string    `json:"snapshot_version"`
	OrderBy         OrderBy   `json:"order_by"`
	Limit           int       `json:"limit"`
	Alpha           float64   `json:"alpha"`
	Beta            float64   `json:"beta"`
	IgnoredConcepts []string  `json:"ignored_concepts,omitempty"`
	LatencyMS       int64     `json:"latency_ms"`
	CacheHit        bool      `json:"cache_hit"`
	Timestamp       time.Time `json:"timestamp"`
}

// Metrics contains engine operational counters.
type Metrics struct {
	RequestCount int64 `json:"request_count"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	ErrorCount   int64 `json:"error_count"`
	CacheEntries int   `json:"cache_entries"`
}
