// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/colaborador-ia/colaborador/internal/config"
	"github.com/colaborador-ia/colaborador/internal/recommend"
)

func TestNewEngineConfig(t *testing.T) {
	t.Parallel()

	rc := &config.RecommendConfig{
		DefaultAlpha:      0.7,
		DefaultBeta:       0.3,
		TopConcepts:       3,
		NumHops:           3,
		DecayFactor:       0.25,
		MaxFrontier:       100,
		DefaultLimit:      10,
		MaxLimit:          20,
		PredictionTimeout: 2 * time.Second,
		MaxConceptVector:  50,
		CacheEnabled:      true,
		CacheTTL:          time.Minute,
		CacheMaxEntries:   10,
	}

	got := newEngineConfig(rc)
	if err := got.Validate(); err != nil {
		t.Fatalf("mapped config invalid: %v", err)
	}
	if got.Blend.DefaultAlpha != 0.7 || got.Blend.DefaultBeta != 0.3 {
		t.Errorf("blend = %+v", got.Blend)
	}
	if got.Collaborative.NumHops != 3 || got.Collaborative.DecayFactor != 0.25 || got.Collaborative.MaxFrontier != 100 {
		t.Errorf("collaborative = %+v", got.Collaborative)
	}
	if got.Limits.MaxConceptVector != 50 || got.Limits.PredictionTimeout != 2*time.Second {
		t.Errorf("limits = %+v", got.Limits)
	}
	if !got.Cache.Enabled || got.Cache.MaxEntries != 10 {
		t.Errorf("cache = %+v", got.Cache)
	}
}

const bundle = `{
  "version": "fixture",
  "concepts": [{"id": "C1", "display_name": "Machine Learning", "level": 1}],
  "authors": [
    {"id": "A1", "display_name": "Ana", "country_code": "CL", "concept_affinity": {"C1": 1}},
    {"id": "A2", "display_name": "Bruno", "country_code": "AR", "concept_affinity": {"C1": 0.5}}
  ],
  "coauthorships": [{"author_a": "A1", "author_b": "A2", "shared_works": 3}]
}`

func TestInitSnapshot_FileSourceWarmStart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	if err := os.WriteFile(path, []byte(bundle), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Snapshot: config.SnapshotConfig{
			Source:        config.SourceFile,
			FilePath:      path,
			EdgeWeighting: "log1p",
			LoadTimeout:   10 * time.Second,
			Breaker:       config.BreakerConfig{MaxFailures: 3, OpenTimeout: time.Minute, HalfOpenRequests: 1},
		},
		Recommend: config.RecommendConfig{
			DefaultAlpha:      0.5,
			DefaultBeta:       0.5,
			TopConcepts:       5,
			NumHops:           2,
			DecayFactor:       0.5,
			MaxFrontier:       500,
			DefaultLimit:      50,
			MaxLimit:          200,
			PredictionTimeout: 5 * time.Second,
			MaxConceptVector:  200,
		},
	}

	c, err := initSnapshot(cfg)
	if err != nil {
		t.Fatalf("initSnapshot() error = %v", err)
	}
	defer c.Close()

	if c.Persist != nil {
		t.Error("persistence should be off without a persist path")
	}

	warmSnapshot(context.Background(), c)
	if !c.Store.Loaded() {
		t.Fatal("snapshot not loaded after warm start")
	}

	resp, err := c.Engine.Recommend(context.Background(), recommend.Request{AuthorID: "A1"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].AuthorID != "A2" {
		t.Errorf("recommendations = %+v, want [A2]", resp.Recommendations)
	}
}

func TestInitSnapshot_UnknownSource(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Snapshot: config.SnapshotConfig{Source: "s3"}}
	if _, err := initSnapshot(cfg); err == nil {
		t.Fatal("initSnapshot() should reject an unknown source")
	}
}
