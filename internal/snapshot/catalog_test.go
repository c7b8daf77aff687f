// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package snapshot

import (
	"fmt"
	"testing"
)

func TestCatalog_Lookup(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, testData(), BuildOptions{})
	c := s.Catalog()

	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}
	got, ok := c.Lookup("C2")
	if !ok || got.DisplayName != "Deep Learning" || got.Level != 2 {
		t.Errorf("Lookup(C2) = %+v, %v", got, ok)
	}
	if _, ok := c.Lookup("C99"); ok {
		t.Error("Lookup(C99) should fail")
	}
}

func TestCatalog_Search(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, testData(), BuildOptions{})
	c := s.Catalog()

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{name: "prefix", query: "mach", want: []string{"C1"}},
		{name: "case insensitive", query: "DEEP", want: []string{"C2"}},
		{name: "substring ordered by level", query: "learning", want: []string{"C1", "C2"}},
		{name: "prefix group first", query: "c", want: []string{"C3", "C4", "C1"}},
		{name: "limit", query: "learning", limit: 1, want: []string{"C1"}},
		{name: "no match", query: "quantum", want: []string{}},
		{name: "empty", query: "  ", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Search(tt.query, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) = %v, want %v", tt.query, ids(got), tt.want)
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("Search(%q)[%d] = %s, want %s", tt.query, i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestCatalog_SearchLimitClamp(t *testing.T) {
	t.Parallel()

	concepts := make([]Concept, 0, 150)
	for i := 0; i < 150; i++ {
		concepts = append(concepts, Concept{ID: fmt.Sprintf("C%03d", i), DisplayName: fmt.Sprintf("Topic %03d", i)})
	}
	s := mustBuild(t, &Data{Concepts: concepts}, BuildOptions{})

	if got := len(s.Catalog().Search("topic", 0)); got != DefaultSearchLimit {
		t.Errorf("default limit = %d, want %d", got, DefaultSearchLimit)
	}
	if got := len(s.Catalog().Search("topic", 1000)); got != MaxSearchLimit {
		t.Errorf("clamped limit = %d, want %d", got, MaxSearchLimit)
	}
}

func ids(concepts []Concept) []string {
	out := make([]string, len(concepts))
	for i, c := range concepts {
		out[i] = c.ID
	}
	return out
}
