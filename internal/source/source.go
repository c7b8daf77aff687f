// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/colaborador-ia/colaborador/internal/config"
	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

// Source produces a fresh data bundle for snapshot.Build.
type Source interface {
	// Name identifies the source in logs and metric labels.
	Name() string

	// Load reads the whole dataset. Implementations honor ctx cancellation.
	Load(ctx context.Context) (*snapshot.Data, error)
}

// ErrEmptyDataset is returned when a source yields no authors or no concepts.
// Swapping in such a snapshot would make every request return nothing.
var ErrEmptyDataset = errors.New("dataset has no authors or no concepts")

// New builds the source selected by cfg, wrapped in a circuit breaker.
func New(cfg *config.SnapshotConfig) (Source, error) {
	var inner Source
	switch cfg.Source {
	case config.SourceFile:
		inner = NewFileSource(cfg.FilePath)
	case config.SourceDuckDB:
		inner = NewDuckDBSource(cfg.DuckDBPath, cfg.DuckDBMaxMemory)
	default:
		return nil, fmt.Errorf("unknown snapshot source %q", cfg.Source)
	}
	return NewBreakerSource(inner, cfg.Breaker), nil
}

func checkNotEmpty(data *snapshot.Data) error {
	if len(data.Authors) == 0 || len(data.Concepts) == 0 {
		return fmt.Errorf("%w (authors=%d concepts=%d)", ErrEmptyDataset, len(data.Authors), len(data.Concepts))
	}
	return nil
}
