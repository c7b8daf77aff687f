// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package recommend

import (
	"sort"
)

// PipelineOptions controls the post-scoring stages.
type PipelineOptions struct {
	// CountryCode keeps only authors from this country when non-empty.
	CountryCode string
	OrderBy     OrderBy
	// Limit must already be clamped.
	Limit int
}

// ApplyPipeline filters, orders and truncates candidates, in that order.
// It returns the page and the number of results that survived filtering
// (before truncation). candidates is reordered in place.
func ApplyPipeline(candidates []Recommendation, opts PipelineOptions) ([]Recommendation, int) {
	filtered := candidates
	if opts.CountryCode != "" {
		code := NormalizeCountry(opts.CountryCode)
		filtered = candidates[:0]
		for i := range candidates {
			if candidates[i].CountryCode == code {
				filtered = append(filtered, candidates[i])
			}
		}
	}

	sortRecommendations(filtered, opts.OrderBy)

	total := len(filtered)
	if opts.Limit >= 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}
	return filtered, total
}

// sortRecommendations orders descending by the selected key, ties by
// author id ascending.
func sortRecommendations(recs []Recommendation, order OrderBy) {
	less := func(a, b *Recommendation) bool {
		switch order {
		case OrderCitationCount:
			if a.CitedByCount != b.CitedByCount {
				return a.CitedByCount > b.CitedByCount
			}
		case OrderWorkCount:
			if a.WorksCount != b.WorksCount {
				return a.WorksCount > b.WorksCount
			}
		default:
			if a.SimilarityScore != b.SimilarityScore {
				return a.SimilarityScore > b.SimilarityScore
			}
		}
		return a.AuthorID < b.AuthorID
	}
	sort.Slice(recs, func(i, j int) bool { return less(&recs[i], &recs[j]) })
}

// ClampLimit resolves a requested limit: nil means def, anything else is
// clamped to [1, maxLimit].
func ClampLimit(limit *int, def, maxLimit int) int {
	if limit == nil {
		return def
	}
	switch {
	case *limit < 1:
		return 1
	case *limit > maxLimit:
		return maxLimit
	default:
		return *limit
	}
}
