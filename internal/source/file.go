// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

// FileSource reads a JSON bundle with the snapshot.Data layout:
//
//	{"version": "...", "concepts": [...], "institutions": [...],
//	 "authors": [...], "coauthorships": [...]}
type FileSource struct {
	path string
}

// NewFileSource creates a source reading path on every Load.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements Source.
func (s *FileSource) Name() string {
	return "file"
}

// Path returns the watched file.
func (s *FileSource) Path() string {
	return s.path
}

// Load implements Source. A bundle without a version gets one derived from
// the file's modification time.
func (s *FileSource) Load(ctx context.Context) (*snapshot.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat snapshot file: %w", err)
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data snapshot.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode snapshot file %s: %w", s.path, err)
	}
	if err := checkNotEmpty(&data); err != nil {
		return nil, err
	}
	if data.Version == "" {
		data.Version = fileVersion(s.path, info.ModTime())
	}
	return &data, nil
}

func fileVersion(path string, modTime time.Time) string {
	return filepath.Base(path) + "@" + modTime.UTC().Format(time.RFC3339)
}
