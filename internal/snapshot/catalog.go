// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package snapshot

import (
	"fmt"
	"sort"
	"strings"
)

// Search limits for concept and author lookups.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// MaxConceptLevel is the deepest level in the concept hierarchy.
const MaxConceptLevel = 6

// Catalog is the read-only concept lookup table.
type Catalog struct {
	concepts []Concept // sorted by ID
	byID     map[string]int
	lowered  []string // lowercased display names, parallel to concepts
	names    *trie
}

func newCatalog(concepts []Concept) (*Catalog, error) {
	sorted := make([]Concept, len(concepts))
	copy(sorted, concepts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	c := &Catalog{
		concepts: sorted,
		byID:     make(map[string]int, len(sorted)),
		lowered:  make([]string, len(sorted)),
		names:    newTrie(),
	}

	seenNames := make(map[string]string, len(sorted))
	for i, concept := range sorted {
		if concept.ID == "" {
			return nil, fmt.Errorf("concept at position %d: %w", i, ErrEmptyID)
		}
		if _, dup := c.byID[concept.ID]; dup {
			return nil, fmt.Errorf("concept %s: %w", concept.ID, ErrDuplicateConcept)
		}
		key := normalizeKey(concept.DisplayName)
		if key == "" {
			return nil, fmt.Errorf("concept %s has no display name: %w", concept.ID, ErrInvalidData)
		}
		if other, dup := seenNames[key]; dup {
			return nil, fmt.Errorf("display name %q shared by %s and %s: %w",
				concept.DisplayName, other, concept.ID, ErrDuplicateConcept)
		}
		if concept.Level < 0 || concept.Level > MaxConceptLevel {
			return nil, fmt.Errorf("concept %s level %d outside [0,%d]: %w",
				concept.ID, concept.Level, MaxConceptLevel, ErrInvalidData)
		}

		seenNames[key] = concept.ID
		c.byID[concept.ID] = i
		c.lowered[i] = key
		c.names.insert(concept.DisplayName, i)
	}

	return c, nil
}

// Len returns the number of concepts.
func (c *Catalog) Len() int {
	return len(c.concepts)
}

// Lookup returns the concept with the given id.
func (c *Catalog) Lookup(id string) (Concept, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Concept{}, false
	}
	return c.concepts[i], true
}

// Contains reports whether id is a known concept.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Search returns concepts whose display name matches query case-insensitively.
// Prefix matches come first, then names containing query elsewhere. Inside
// each group concepts are ordered by level, then name. An empty query returns
// nothing; limit is clamped to [1, MaxSearchLimit] with DefaultSearchLimit for
// non-positive values.
func (c *Catalog) Search(query string, limit int) []Concept {
	needle := normalizeKey(query)
	if needle == "" {
		return []Concept{}
	}
	limit = clampSearchLimit(limit)

	prefix := c.names.withPrefix(needle, 0)
	inPrefix := make(map[int]struct{}, len(prefix))
	for _, i := range prefix {
		inPrefix[i] = struct{}{}
	}

	var contains []int
	for i, name := range c.lowered {
		if _, ok := inPrefix[i]; ok {
			continue
		}
		if strings.Contains(name, needle) {
			contains = append(contains, i)
		}
	}

	c.sortGroup(prefix)
	c.sortGroup(contains)

	out := make([]Concept, 0, min(limit, len(prefix)+len(contains)))
	for _, group := range [][]int{prefix, contains} {
		for _, i := range group {
			if len(out) == limit {
				return out
			}
			out = append(out, c.concepts[i])
		}
	}
	return out
}

func (c *Catalog) sortGroup(idx []int) {
	sort.Slice(idx, func(a, b int) bool {
		ca, cb := c.concepts[idx[a]], c.concepts[idx[b]]
		if ca.Level != cb.Level {
			return ca.Level < cb.Level
		}
		if c.lowered[idx[a]] != c.lowered[idx[b]] {
			return c.lowered[idx[a]] < c.lowered[idx[b]]
		}
		return ca.ID < cb.ID
	})
}

func clampSearchLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultSearchLimit
	case limit > MaxSearchLimit:
		return MaxSearchLimit
	default:
		return limit
	}
}
