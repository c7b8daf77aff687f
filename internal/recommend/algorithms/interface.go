// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// Package algorithms implements the two author scorers of the hybrid engine.
//
//   - Content-Based (CB): sparse cosine similarity between a query concept
//     vector and each author's concept affinity vector
//   - Collaborative Filtering (CF): bounded multi-hop walk over the
//     co-authorship graph with geometric decay per hop
//
// Scorers are stateless. Every call receives the snapshot to read, so one
// request always scores against a single consistent dataset.
//
// # Determinism
//
// Both scorers return raw scores ordered by score descending, ties broken by
// author id ascending. Snapshot indices follow author id order, so ordering
// by index is ordering by id.
//
// # Thread Safety
//
// Scorers hold only immutable configuration and are safe for concurrent use.
package algorithms

import (
	"context"
	"sort"
)

// cancelCheckInterval is how many inner-loop steps run between context checks.
const cancelCheckInterval = 1024

// ConceptContribution is one query concept's share of an author's CB score.
type ConceptContribution struct {
	ConceptID string
	Score     float64
}

// Scored is one author's raw score.
type Scored struct {
	// Author is the snapshot's dense author index.
	Author int
	Score  float64

	// TopConcepts is set by the content-based scorer only.
	TopConcepts []ConceptContribution
}

// sortScored orders by score descending, then author index ascending.
func sortScored(scored []Scored) {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Author < scored[j].Author
	})
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
