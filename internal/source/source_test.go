// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/colaborador-ia/colaborador/internal/config"
	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

const bundleJSON = `{
  "version": "2026-10-01",
  "concepts": [
    {"id": "C1", "display_name": "Machine Learning", "level": 1},
    {"id": "C2", "display_name": "Robotics", "level": 2}
  ],
  "institutions": [{"id": "I1", "display_name": "Universidad de Chile", "country_code": "CL"}],
  "authors": [
    {"id": "A1", "display_name": "Ana", "institution_id": "I1", "country_code": "CL",
     "works_count": 12, "cited_by_count": 40, "concept_affinity": {"C1": 0.9}},
    {"id": "A2", "display_name": "Bruno", "country_code": "BR", "concept_affinity": {"C2": 0.4}}
  ],
  "coauthorships": [{"author_a": "A1", "author_b": "A2", "shared_works": 3}]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFileSource_Load(t *testing.T) {
	t.Parallel()

	src := NewFileSource(writeFile(t, "snapshot.json", bundleJSON))
	data, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if data.Version != "2026-10-01" {
		t.Errorf("Version = %q", data.Version)
	}
	if len(data.Authors) != 2 || len(data.Concepts) != 2 || len(data.Coauthorships) != 1 {
		t.Fatalf("unexpected sizes: %d authors, %d concepts, %d edges",
			len(data.Authors), len(data.Concepts), len(data.Coauthorships))
	}
	if data.Authors[0].ConceptAffinity["C1"] != 0.9 {
		t.Errorf("A1 affinity = %v", data.Authors[0].ConceptAffinity)
	}

	if _, err := snapshot.Build(data, snapshot.BuildOptions{}); err != nil {
		t.Errorf("loaded bundle should build: %v", err)
	}
}

func TestFileSource_DerivedVersion(t *testing.T) {
	t.Parallel()

	bundle := strings.Replace(bundleJSON, `"version": "2026-10-01",`, "", 1)
	src := NewFileSource(writeFile(t, "bundle.json", bundle))
	data, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !strings.HasPrefix(data.Version, "bundle.json@") {
		t.Errorf("Version = %q, want bundle.json@<mtime>", data.Version)
	}
}

func TestFileSource_Errors(t *testing.T) {
	t.Parallel()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		path    string
		ctx     context.Context
		wantErr error
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.json"), context.Background(), os.ErrNotExist},
		{"malformed json", writeFile(t, "bad.json", `{"authors": [`), context.Background(), nil},
		{"empty dataset", writeFile(t, "empty.json", `{"version": "v", "concepts": [], "authors": []}`), context.Background(), ErrEmptyDataset},
		{"cancelled", writeFile(t, "ok.json", bundleJSON), cancelled, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewFileSource(tt.path).Load(tt.ctx)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

type countingSource struct {
	calls atomic.Int64
	err   error
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) Load(ctx context.Context) (*snapshot.Data, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &snapshot.Data{Version: "v"}, nil
}

func TestBreakerSource_OpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	inner := &countingSource{err: errors.New("disk on fire")}
	b := NewBreakerSource(inner, config.BreakerConfig{MaxFailures: 2, OpenTimeout: time.Hour, HalfOpenRequests: 1})

	for i := 0; i < 2; i++ {
		if _, err := b.Load(context.Background()); err == nil || errors.Is(err, ErrSourceUnavailable) {
			t.Fatalf("attempt %d: error = %v, want the source error", i, err)
		}
	}
	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	_, err := b.Load(context.Background())
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Load() while open = %v, want ErrSourceUnavailable", err)
	}
	if got := inner.calls.Load(); got != 2 {
		t.Errorf("inner calls = %d, want 2", got)
	}
}

func TestBreakerSource_CancellationIsNotAFailure(t *testing.T) {
	t.Parallel()

	inner := &countingSource{err: context.Canceled}
	b := NewBreakerSource(inner, config.BreakerConfig{MaxFailures: 1, OpenTimeout: time.Hour})

	for i := 0; i < 3; i++ {
		if _, err := b.Load(context.Background()); !errors.Is(err, context.Canceled) {
			t.Fatalf("Load() error = %v, want context.Canceled", err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestBreakerSource_PassesThrough(t *testing.T) {
	t.Parallel()

	inner := &countingSource{}
	b := NewBreakerSource(inner, config.BreakerConfig{MaxFailures: 3, OpenTimeout: time.Minute})
	data, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if data.Version != "v" {
		t.Errorf("Version = %q", data.Version)
	}
	if b.Name() != "counting" || b.Inner() != inner {
		t.Error("BreakerSource should expose the wrapped source")
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      config.SnapshotConfig
		wantName string
		wantErr  bool
	}{
		{"file", config.SnapshotConfig{Source: config.SourceFile, FilePath: "/x.json"}, "file", false},
		{"duckdb", config.SnapshotConfig{Source: config.SourceDuckDB, DuckDBPath: "/x.duckdb"}, "duckdb", false},
		{"unknown", config.SnapshotConfig{Source: "s3"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src, err := New(&tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if src.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", src.Name(), tt.wantName)
			}
			if _, ok := src.(*BreakerSource); !ok {
				t.Errorf("New() should wrap the source in a breaker, got %T", src)
			}
		})
	}
}
