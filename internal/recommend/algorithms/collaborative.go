// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package algorithms

import (
	"context"
	"sort"

	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

// Collaborative scores authors by proximity to a seed author in the
// co-authorship graph.
//
// The walk expands a frontier hop by hop, up to NumHops:
//
//	Hop 1: direct collaborators, score = w(seed, a) / maxW
//	Hop 2: collaborators of collaborators, score = sum over paths of
//	       decay * w1/maxW * w2/maxW
//	...
//
// where maxW is the heaviest edge in the snapshot, so every factor lies in
// (0, 1], and decay = DecayFactor^(hop-1). An author is scored only at the
// hop where it is first reached, summing every path of that length; the seed
// is never scored. Direct collaborator scores are proportional to edge weight.
type Collaborative struct {
	config CollaborativeConfig
}

// CollaborativeConfig contains configuration for the graph walk.
type CollaborativeConfig struct {
	// NumHops is the search radius. Default: 2.
	NumHops int

	// DecayFactor is the per-hop penalty in (0, 1]. Default: 0.5.
	DecayFactor float64

	// MaxFrontier caps how many authors are expanded per hop, keeping the
	// strongest paths. 0 disables the cap. Default: 500.
	MaxFrontier int
}

// DefaultCollaborativeConfig returns the default configuration.
func DefaultCollaborativeConfig() CollaborativeConfig {
	return CollaborativeConfig{
		NumHops:     2,
		DecayFactor: 0.5,
		MaxFrontier: 500,
	}
}

// NewCollaborative creates a new graph-walk scorer.
func NewCollaborative(cfg CollaborativeConfig) *Collaborative {
	if cfg.NumHops <= 0 {
		cfg.NumHops = 2
	}
	if cfg.DecayFactor <= 0 || cfg.DecayFactor > 1 {
		cfg.DecayFactor = 0.5
	}
	if cfg.MaxFrontier < 0 {
		cfg.MaxFrontier = 0
	}
	return &Collaborative{config: cfg}
}

// Name returns the scorer identifier.
func (c *Collaborative) Name() string {
	return "collaborative"
}

// Config returns the effective configuration.
func (c *Collaborative) Config() CollaborativeConfig {
	return c.config
}

// frontierItem represents an author in the current frontier with its
// accumulated path weight.
type frontierItem struct {
	author int
	weight float64
}

// Score walks the graph from seed (a dense snapshot index). A seed without
// collaborators yields an empty result, not an error.
func (c *Collaborative) Score(ctx context.Context, snap *snapshot.Snapshot, seed int) ([]Scored, error) {
	maxW := snap.MaxEdgeWeight()
	if seed < 0 || seed >= snap.NumAuthors() || snap.Degree(seed) == 0 || maxW <= 0 {
		return []Scored{}, nil
	}

	scores := make(map[int]float64)
	visited := map[int]struct{}{seed: {}}
	frontier := []frontierItem{{author: seed, weight: 1.0}}

	decay := 1.0
	for hop := 1; hop <= c.config.NumHops; hop++ {
		if len(frontier) == 0 {
			break
		}
		if hop > 1 {
			decay *= c.config.DecayFactor
		}

		reached := make(map[int]float64)
		for _, f := range frontier {
			if ContextCancelled(ctx) {
				return nil, ctx.Err()
			}
			for _, edge := range snap.Neighbors(f.author) {
				if _, seen := visited[edge.To]; seen {
					continue
				}
				pathWeight := f.weight * (edge.Weight / maxW)
				reached[edge.To] += pathWeight
				scores[edge.To] += pathWeight * decay
			}
		}

		next := make([]frontierItem, 0, len(reached))
		for author, w := range reached {
			visited[author] = struct{}{}
			next = append(next, frontierItem{author: author, weight: w})
		}
		frontier = c.trimFrontier(next)
	}

	results := make([]Scored, 0, len(scores))
	for author, score := range scores {
		results = append(results, Scored{Author: author, Score: score})
	}
	sortScored(results)
	return results, nil
}

// trimFrontier orders the frontier deterministically and applies MaxFrontier.
func (c *Collaborative) trimFrontier(items []frontierItem) []frontierItem {
	sort.Slice(items, func(i, j int) bool {
		if items[i].weight != items[j].weight {
			return items[i].weight > items[j].weight
		}
		return items[i].author < items[j].author
	})
	if c.config.MaxFrontier > 0 && len(items) > c.config.MaxFrontier {
		items = items[:c.config.MaxFrontier]
	}
	return items
}
