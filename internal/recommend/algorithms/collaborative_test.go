// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package algorithms

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

// graphData builds:
//
//	S --5-- A --2-- D
//	S --3-- B --1-- D
//	B --4-- E --1-- F
//	I (isolated)
func graphData() *snapshot.Data {
	authors := []snapshot.Author{}
	for _, id := range []string{"S", "A", "B", "D", "E", "F", "I"} {
		authors = append(authors, snapshot.Author{ID: id, DisplayName: id})
	}
	return &snapshot.Data{
		Authors: authors,
		Coauthorships: []snapshot.Coauthorship{
			{AuthorA: "S", AuthorB: "A", SharedWorks: 5},
			{AuthorA: "S", AuthorB: "B", SharedWorks: 3},
			{AuthorA: "A", AuthorB: "D", SharedWorks: 2},
			{AuthorA: "B", AuthorB: "D", SharedWorks: 1},
			{AuthorA: "B", AuthorB: "E", SharedWorks: 4},
			{AuthorA: "E", AuthorB: "F", SharedWorks: 1},
		},
	}
}

func TestNewCollaborative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		config         CollaborativeConfig
		expectedConfig CollaborativeConfig
	}{
		{
			name:           "default config",
			config:         DefaultCollaborativeConfig(),
			expectedConfig: CollaborativeConfig{NumHops: 2, DecayFactor: 0.5, MaxFrontier: 500},
		},
		{
			name:           "custom config",
			config:         CollaborativeConfig{NumHops: 3, DecayFactor: 0.7, MaxFrontier: 10},
			expectedConfig: CollaborativeConfig{NumHops: 3, DecayFactor: 0.7, MaxFrontier: 10},
		},
		{
			name:           "zero values get defaults",
			config:         CollaborativeConfig{},
			expectedConfig: CollaborativeConfig{NumHops: 2, DecayFactor: 0.5, MaxFrontier: 0},
		},
		{
			name:           "invalid decay",
			config:         CollaborativeConfig{NumHops: 1, DecayFactor: 1.5, MaxFrontier: -1},
			expectedConfig: CollaborativeConfig{NumHops: 1, DecayFactor: 0.5, MaxFrontier: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewCollaborative(tt.config)
			if c.Config() != tt.expectedConfig {
				t.Errorf("Config() = %+v, want %+v", c.Config(), tt.expectedConfig)
			}
		})
	}
}

func scoresByID(snap *snapshot.Snapshot, scored []Scored) map[string]float64 {
	out := make(map[string]float64, len(scored))
	for _, s := range scored {
		out[snap.AuthorAt(s.Author).ID] = s.Score
	}
	return out
}

func TestCollaborative_Score(t *testing.T) {
	t.Parallel()

	snap := buildSnapshot(t, graphData())
	seed, _ := snap.AuthorIndex("S")

	got, err := NewCollaborative(DefaultCollaborativeConfig()).Score(context.Background(), snap, seed)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	// maxW = 5. Hop 1: A = 5/5, B = 3/5.
	// Hop 2 (decay 0.5): D = 0.5*(1*2/5 + 0.6*1/5), E = 0.5*(0.6*4/5).
	want := map[string]float64{
		"A": 1,
		"B": 0.6,
		"D": 0.5 * (0.4 + 0.12),
		"E": 0.5 * 0.48,
	}
	byID := scoresByID(snap, got)
	if len(byID) != len(want) {
		t.Fatalf("Score() = %v, want %d authors", byID, len(want))
	}
	for id, w := range want {
		if math.Abs(byID[id]-w) > 1e-9 {
			t.Errorf("score[%s] = %v, want %v", id, byID[id], w)
		}
	}
	if _, ok := byID["S"]; ok {
		t.Error("seed must be excluded")
	}
	if _, ok := byID["F"]; ok {
		t.Error("F is three hops away and must not be reached with NumHops=2")
	}

	order := []string{"A", "B", "D", "E"}
	for i, id := range order {
		if got := snap.AuthorAt(got[i].Author).ID; got != id {
			t.Errorf("rank %d = %s, want %s", i, got, id)
		}
	}
}

func TestCollaborative_DirectWeightsOrder(t *testing.T) {
	t.Parallel()

	snap := buildSnapshot(t, graphData())
	seed, _ := snap.AuthorIndex("S")

	got, err := NewCollaborative(CollaborativeConfig{NumHops: 1}).Score(context.Background(), snap, seed)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Score() returned %d authors, want 2", len(got))
	}
	if snap.AuthorAt(got[0].Author).ID != "A" || !(got[0].Score > got[1].Score) {
		t.Errorf("weight-5 collaborator must rank strictly above weight-3 collaborator: %+v", got)
	}
}

func TestCollaborative_MoreHops(t *testing.T) {
	t.Parallel()

	snap := buildSnapshot(t, graphData())
	seed, _ := snap.AuthorIndex("S")

	got, err := NewCollaborative(CollaborativeConfig{NumHops: 3, DecayFactor: 0.5}).Score(context.Background(), snap, seed)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	byID := scoresByID(snap, got)
	// F: 0.25 * (0.6*0.8) * 1/5
	if want := 0.25 * 0.48 * 0.2; math.Abs(byID["F"]-want) > 1e-9 {
		t.Errorf("score[F] = %v, want %v", byID["F"], want)
	}
}

func TestCollaborative_IsolatedSeed(t *testing.T) {
	t.Parallel()

	snap := buildSnapshot(t, graphData())
	seed, _ := snap.AuthorIndex("I")

	got, err := NewCollaborative(DefaultCollaborativeConfig()).Score(context.Background(), snap, seed)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("isolated seed returned %v, want empty", got)
	}
}

func TestCollaborative_TieBreakByAuthor(t *testing.T) {
	t.Parallel()

	data := &snapshot.Data{
		Authors: []snapshot.Author{{ID: "S"}, {ID: "Z"}, {ID: "M"}, {ID: "B"}},
		Coauthorships: []snapshot.Coauthorship{
			{AuthorA: "S", AuthorB: "Z", SharedWorks: 2},
			{AuthorA: "S", AuthorB: "M", SharedWorks: 2},
			{AuthorA: "S", AuthorB: "B", SharedWorks: 2},
		},
	}
	snap := buildSnapshot(t, data)
	seed, _ := snap.AuthorIndex("S")

	got, err := NewCollaborative(DefaultCollaborativeConfig()).Score(context.Background(), snap, seed)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	want := []string{"B", "M", "Z"}
	for i, id := range want {
		if got := snap.AuthorAt(got[i].Author).ID; got != id {
			t.Errorf("rank %d = %s, want %s", i, got, id)
		}
	}
}

func TestCollaborative_MaxFrontier(t *testing.T) {
	t.Parallel()

	snap := buildSnapshot(t, graphData())
	seed, _ := snap.AuthorIndex("S")

	// Only A survives the hop-1 frontier, so E (reachable only through B) is never scored.
	got, err := NewCollaborative(CollaborativeConfig{NumHops: 2, DecayFactor: 0.5, MaxFrontier: 1}).
		Score(context.Background(), snap, seed)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	byID := scoresByID(snap, got)
	if _, ok := byID["E"]; ok {
		t.Errorf("E should not be reached with MaxFrontier=1: %v", byID)
	}
	if want := 0.5 * 0.4; math.Abs(byID["D"]-want) > 1e-9 {
		t.Errorf("score[D] = %v, want %v", byID["D"], want)
	}
}

func TestCollaborative_Cancelled(t *testing.T) {
	t.Parallel()

	snap := buildSnapshot(t, graphData())
	seed, _ := snap.AuthorIndex("S")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCollaborative(DefaultCollaborativeConfig()).Score(ctx, snap, seed)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Score() error = %v, want context.Canceled", err)
	}
}
