// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package algorithms

import (
	"context"
	"math"
	"sort"

	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

// ContentBased scores authors by topical similarity to a query concept vector.
//
// Both the query and each author's concept affinity are sparse vectors over
// the concept space. The score is their cosine similarity:
//
//	cos(q, a) = sum_{c in q ∩ a} q[c]*a[c] / (|q| * |a|)
//
// The dot product only visits the intersection (through the snapshot's
// concept postings), while the norms cover the full vectors. Authors sharing
// no concept with the query are left out of the result entirely rather than
// scored 0.
type ContentBased struct {
	topConcepts int
}

// ContentBasedConfig contains configuration for content-based scoring.
type ContentBasedConfig struct {
	// TopConcepts is how many contributing concepts are reported per author.
	// Default: 5.
	TopConcepts int
}

// DefaultContentBasedConfig returns the default configuration.
func DefaultContentBasedConfig() ContentBasedConfig {
	return ContentBasedConfig{TopConcepts: 5}
}

// NewContentBased creates a new content-based scorer.
func NewContentBased(cfg ContentBasedConfig) *ContentBased {
	if cfg.TopConcepts <= 0 {
		cfg.TopConcepts = 5
	}
	return &ContentBased{topConcepts: cfg.TopConcepts}
}

// Name returns the scorer identifier.
func (c *ContentBased) Name() string {
	return "content"
}

type cbAccumulator struct {
	dot      float64
	contribs []ConceptContribution
}

// Score returns every author with a non-empty overlap with query, highest
// cosine first. query must only hold known concepts with positive weights;
// an empty query yields no results.
//
// Each author's TopConcepts lists the raw products q[c]*a[c], largest first
// (ties by concept id), truncated to the configured size.
func (c *ContentBased) Score(ctx context.Context, snap *snapshot.Snapshot, query map[string]float64) ([]Scored, error) {
	if len(query) == 0 {
		return []Scored{}, nil
	}

	concepts := make([]string, 0, len(query))
	var sumSquares float64
	for id, w := range query {
		concepts = append(concepts, id)
		sumSquares += w * w
	}
	sort.Strings(concepts)
	queryNorm := math.Sqrt(sumSquares)
	if queryNorm == 0 {
		return []Scored{}, nil
	}

	acc := make(map[int]*cbAccumulator)
	steps := 0
	for _, conceptID := range concepts {
		qw := query[conceptID]
		for _, p := range snap.Postings(conceptID) {
			steps++
			if steps%cancelCheckInterval == 0 && ContextCancelled(ctx) {
				return nil, ctx.Err()
			}

			product := qw * p.Weight
			a := acc[p.Author]
			if a == nil {
				a = &cbAccumulator{}
				acc[p.Author] = a
			}
			a.dot += product
			a.contribs = append(a.contribs, ConceptContribution{ConceptID: conceptID, Score: product})
		}
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
	}

	results := make([]Scored, 0, len(acc))
	for author, a := range acc {
		norm := snap.Norm(author)
		if norm == 0 || a.dot <= 0 {
			continue
		}
		score := a.dot / (queryNorm * norm)
		if score > 1 {
			score = 1 // rounding
		}
		results = append(results, Scored{
			Author:      author,
			Score:       score,
			TopConcepts: c.rankContributions(a.contribs),
		})
	}

	sortScored(results)
	return results, nil
}

func (c *ContentBased) rankContributions(contribs []ConceptContribution) []ConceptContribution {
	sort.Slice(contribs, func(i, j int) bool {
		if contribs[i].Score != contribs[j].Score {
			return contribs[i].Score > contribs[j].Score
		}
		return contribs[i].ConceptID < contribs[j].ConceptID
	})
	if len(contribs) > c.topConcepts {
		contribs = contribs[:c.topConcepts]
	}
	return contribs
}
