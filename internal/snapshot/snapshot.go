// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package snapshot

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// EdgeWeighting selects how shared work counts become edge weights.
type EdgeWeighting string

const (
	// WeightLog1p weighs an edge log1p(shared_works), damping prolific pairs.
	WeightLog1p EdgeWeighting = "log1p"
	// WeightRaw uses shared_works unchanged.
	WeightRaw EdgeWeighting = "raw"
)

// Valid reports whether w is a known weighting.
func (w EdgeWeighting) Valid() bool {
	return w == WeightLog1p || w == WeightRaw
}

// BuildOptions tunes Build.
type BuildOptions struct {
	// EdgeWeighting defaults to WeightLog1p when empty.
	EdgeWeighting EdgeWeighting

	// Now overrides the build clock (tests).
	Now func() time.Time
}

// Snapshot is the immutable, indexed form of a Data bundle.
type Snapshot struct {
	version string
	builtAt time.Time

	catalog      *Catalog
	institutions map[string]Institution

	authors       []Author // sorted by ID, so index order is id order
	authorIndex   map[string]int
	authorNames   [][]string // lowercased display name, then alternatives
	authorTrie    *trie
	affinities    [][]Affinity // per author, sorted by concept id
	norms         []float64
	postings      map[string][]Posting
	adjacency     [][]Edge // per author, sorted by neighbor index
	edgeCount     int
	maxEdge       float64
	edgeWeighting EdgeWeighting
}

type pairKey struct {
	a, b int
}

// Build validates data and indexes it. The result shares no mutable state
// with data.
func Build(data *Data, opts BuildOptions) (*Snapshot, error) {
	if data == nil {
		return nil, ErrNilData
	}
	if opts.EdgeWeighting == "" {
		opts.EdgeWeighting = WeightLog1p
	}
	if !opts.EdgeWeighting.Valid() {
		return nil, fmt.Errorf("edge weighting %q: %w", opts.EdgeWeighting, ErrInvalidData)
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	catalog, err := newCatalog(data.Concepts)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	s := &Snapshot{
		version:       data.Version,
		builtAt:       now().UTC(),
		catalog:       catalog,
		institutions:  make(map[string]Institution, len(data.Institutions)),
		postings:      make(map[string][]Posting),
		authorTrie:    newTrie(),
		edgeWeighting: opts.EdgeWeighting,
	}

	for _, inst := range data.Institutions {
		if inst.ID == "" {
			return nil, fmt.Errorf("institution: %w", ErrEmptyID)
		}
		if _, dup := s.institutions[inst.ID]; dup {
			return nil, fmt.Errorf("duplicate institution %s: %w", inst.ID, ErrInvalidData)
		}
		inst.CountryCode = strings.ToUpper(strings.TrimSpace(inst.CountryCode))
		s.institutions[inst.ID] = inst
	}

	if err := s.indexAuthors(data.Authors); err != nil {
		return nil, err
	}
	s.buildGraph(data.Coauthorships)

	return s, nil
}

//nolint:gocritic // rangeValCopy: authors copied once at build time
func (s *Snapshot) indexAuthors(in []Author) error {
	s.authors = make([]Author, len(in))
	copy(s.authors, in)
	sort.Slice(s.authors, func(i, j int) bool { return s.authors[i].ID < s.authors[j].ID })

	n := len(s.authors)
	s.authorIndex = make(map[string]int, n)
	s.authorNames = make([][]string, n)
	s.affinities = make([][]Affinity, n)
	s.norms = make([]float64, n)

	for i := range s.authors {
		a := &s.authors[i]
		if a.ID == "" {
			return fmt.Errorf("author at position %d: %w", i, ErrEmptyID)
		}
		if _, dup := s.authorIndex[a.ID]; dup {
			return fmt.Errorf("author %s: %w", a.ID, ErrDuplicateAuthor)
		}
		if a.WorksCount < 0 || a.CitedByCount < 0 {
			return fmt.Errorf("author %s has negative counts: %w", a.ID, ErrInvalidData)
		}
		s.authorIndex[a.ID] = i
		a.CountryCode = strings.ToUpper(strings.TrimSpace(a.CountryCode))
		a.DisplayNameAlternatives = append([]string(nil), a.DisplayNameAlternatives...)

		affinity := make(map[string]float64, len(a.ConceptAffinity))
		vector := make([]Affinity, 0, len(a.ConceptAffinity))
		var sumSquares float64
		for conceptID, w := range a.ConceptAffinity {
			if !s.catalog.Contains(conceptID) || w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
				continue
			}
			affinity[conceptID] = w
			vector = append(vector, Affinity{ConceptID: conceptID, Weight: w})
			sumSquares += w * w
		}
		sort.Slice(vector, func(x, y int) bool { return vector[x].ConceptID < vector[y].ConceptID })

		a.ConceptAffinity = affinity
		s.affinities[i] = vector
		s.norms[i] = math.Sqrt(sumSquares)
		for _, dim := range vector {
			s.postings[dim.ConceptID] = append(s.postings[dim.ConceptID], Posting{Author: i, Weight: dim.Weight})
		}

		names := make([]string, 0, 1+len(a.DisplayNameAlternatives))
		names = append(names, normalizeKey(a.DisplayName))
		s.authorTrie.insert(a.DisplayName, i)
		for _, alt := range a.DisplayNameAlternatives {
			if key := normalizeKey(alt); key != "" {
				names = append(names, key)
			}
			s.authorTrie.insert(alt, i)
		}
		s.authorNames[i] = names
	}
	return nil
}

func (s *Snapshot) buildGraph(rows []Coauthorship) {
	shared := make(map[pairKey]float64)
	for _, row := range rows {
		a, okA := s.authorIndex[row.AuthorA]
		b, okB := s.authorIndex[row.AuthorB]
		if !okA || !okB || a == b {
			continue
		}
		if row.SharedWorks <= 0 || math.IsNaN(row.SharedWorks) || math.IsInf(row.SharedWorks, 0) {
			continue
		}
		if a > b {
			a, b = b, a
		}
		shared[pairKey{a, b}] += row.SharedWorks
	}

	s.adjacency = make([][]Edge, len(s.authors))
	for key, works := range shared {
		w := works
		if s.edgeWeighting == WeightLog1p {
			w = math.Log1p(works)
		}
		if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			continue
		}
		s.adjacency[key.a] = append(s.adjacency[key.a], Edge{To: key.b, Weight: w})
		s.adjacency[key.b] = append(s.adjacency[key.b], Edge{To: key.a, Weight: w})
		s.edgeCount++
		if w > s.maxEdge {
			s.maxEdge = w
		}
	}
	for i := range s.adjacency {
		edges := s.adjacency[i]
		sort.Slice(edges, func(x, y int) bool { return edges[x].To < edges[y].To })
	}
}

// Version returns the dataset version string.
func (s *Snapshot) Version() string {
	return s.version
}

// BuiltAt returns when the snapshot was indexed.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}

// Catalog returns the concept catalog.
func (s *Snapshot) Catalog() *Catalog {
	return s.catalog
}

// NumAuthors returns the number of author profiles.
func (s *Snapshot) NumAuthors() int {
	return len(s.authors)
}

// AuthorIndex returns the dense index of an author id.
func (s *Snapshot) AuthorIndex(id string) (int, bool) {
	i, ok := s.authorIndex[id]
	return i, ok
}

// AuthorAt returns the author at dense index i. The result is read-only.
func (s *Snapshot) AuthorAt(i int) *Author {
	return &s.authors[i]
}

// Author returns a copy of the author profile with the given id.
func (s *Snapshot) Author(id string) (Author, bool) {
	i, ok := s.authorIndex[id]
	if !ok {
		return Author{}, false
	}
	return s.authors[i], true
}

// Institution returns the institution with the given id.
func (s *Snapshot) Institution(id string) (Institution, bool) {
	inst, ok := s.institutions[id]
	return inst, ok
}

// InstitutionName resolves an institution id to its display name, or "".
func (s *Snapshot) InstitutionName(id string) string {
	if id == "" {
		return ""
	}
	return s.institutions[id].DisplayName
}

// Norm returns the Euclidean norm of author i's concept vector.
func (s *Snapshot) Norm(i int) float64 {
	return s.norms[i]
}

// Affinities returns author i's concept vector sorted by concept id.
func (s *Snapshot) Affinities(i int) []Affinity {
	return s.affinities[i]
}

// Postings returns the authors holding a non-zero weight for conceptID.
func (s *Snapshot) Postings(conceptID string) []Posting {
	return s.postings[conceptID]
}

// Neighbors returns the collaborators of author i sorted by index.
func (s *Snapshot) Neighbors(i int) []Edge {
	return s.adjacency[i]
}

// Degree returns the number of collaborators of author i.
func (s *Snapshot) Degree(i int) int {
	return len(s.adjacency[i])
}

// MaxEdgeWeight returns the heaviest edge weight, or 0 for an empty graph.
func (s *Snapshot) MaxEdgeWeight() float64 {
	return s.maxEdge
}

// EdgeWeighting returns the weighting the graph was built with.
func (s *Snapshot) EdgeWeighting() EdgeWeighting {
	return s.edgeWeighting
}

// AuthorTopConcepts returns up to n of the author's concepts, highest weight
// first (ties by concept id). n <= 0 returns all of them.
func (s *Snapshot) AuthorTopConcepts(id string, n int) ([]Affinity, bool) {
	i, ok := s.authorIndex[id]
	if !ok {
		return nil, false
	}
	out := make([]Affinity, len(s.affinities[i]))
	copy(out, s.affinities[i])
	sort.Slice(out, func(x, y int) bool {
		if out[x].Weight != out[y].Weight {
			return out[x].Weight > out[y].Weight
		}
		return out[x].ConceptID < out[y].ConceptID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, true
}

// SearchAuthors matches query against display names and alternatives.
// Prefix matches come first (lexical name order), then authors whose display
// name or any alternative contains query, in id order. limit follows the same clamping as Catalog.Search.
func (s *Snapshot) SearchAuthors(query string, limit int) []Author {
	needle := normalizeKey(query)
	if needle == "" {
		return []Author{}
	}
	limit = clampSearchLimit(limit)

	refs := s.authorTrie.withPrefix(needle, limit)
	seen := make(map[int]struct{}, len(refs))
	for _, i := range refs {
		seen[i] = struct{}{}
	}
	for i, names := range s.authorNames {
		if len(refs) >= limit {
			break
		}
		if _, ok := seen[i]; ok {
			continue
		}
		for _, name := range names {
			if strings.Contains(name, needle) {
				refs = append(refs, i)
				break
			}
		}
	}

	out := make([]Author, 0, len(refs))
	for _, i := range refs {
		out = append(out, s.authors[i])
	}
	return out
}

// Stats summarizes the snapshot.
func (s *Snapshot) Stats() Stats {
	return Stats{
		Version:      s.version,
		BuiltAt:      s.builtAt,
		Concepts:     s.catalog.Len(),
		Institutions: len(s.institutions),
		Authors:      len(s.authors),
		Edges:        s.edgeCount,
	}
}
