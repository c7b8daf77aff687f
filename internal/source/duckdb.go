// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/goccy/go-json"

	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

// DuckDBSource reads an OpenAlex extract stored in DuckDB. Expected tables:
//
//	concepts(id, display_name, level)
//	institutions(id, display_name, country_code)
//	authors(id, orcid, display_name, display_name_alternatives, works_count,
//	        cited_by_count, last_known_institution)
//	works_authorships(work_id, author_id, ...)
//	works_concepts(work_id, concept_id, score)
//
// An author's affinity to a concept is the mean works_concepts.score over the
// author's works tagged with it. Co-authorship counts distinct shared works.
type DuckDBSource struct {
	path      string
	maxMemory string
}

// NewDuckDBSource opens path read-only on every Load.
func NewDuckDBSource(path, maxMemory string) *DuckDBSource {
	return &DuckDBSource{path: path, maxMemory: maxMemory}
}

// Name implements Source.
func (s *DuckDBSource) Name() string {
	return "duckdb"
}

func (s *DuckDBSource) connString() string {
	connStr := s.path + "?access_mode=read_only&autoinstall_known_extensions=false&autoload_known_extensions=false"
	if s.maxMemory != "" {
		connStr += "&max_memory=" + s.maxMemory
	}
	return connStr
}

// Load implements Source.
func (s *DuckDBSource) Load(ctx context.Context) (*snapshot.Data, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat duckdb database: %w", err)
	}

	db, err := sql.Open("duckdb", s.connString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	data := &snapshot.Data{
		Version: filepath.Base(s.path) + "@" + info.ModTime().UTC().Format(time.RFC3339),
	}
	steps := []struct {
		name string
		fn   func(context.Context, *sql.DB, *snapshot.Data) error
	}{
		{"concepts", loadConcepts},
		{"institutions", loadInstitutions},
		{"authors", loadAuthors},
		{"affinities", loadAffinities},
		{"coauthorships", loadCoauthorships},
	}
	for _, step := range steps {
		if err := step.fn(ctx, db, data); err != nil {
			return nil, fmt.Errorf("load %s: %w", step.name, err)
		}
	}

	if err := checkNotEmpty(data); err != nil {
		return nil, err
	}
	return data, nil
}

const conceptsQuery = `
SELECT id, COALESCE(display_name, id), COALESCE(level, 0)
FROM concepts
ORDER BY id`

func loadConcepts(ctx context.Context, db *sql.DB, data *snapshot.Data) error {
	rows, err := db.QueryContext(ctx, conceptsQuery)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var c snapshot.Concept
		if err := rows.Scan(&c.ID, &c.DisplayName, &c.Level); err != nil {
			return err
		}
		data.Concepts = append(data.Concepts, c)
	}
	return rows.Err()
}

const institutionsQuery = `
SELECT id, COALESCE(display_name, ''), COALESCE(country_code, '')
FROM institutions
ORDER BY id`

func loadInstitutions(ctx context.Context, db *sql.DB, data *snapshot.Data) error {
	rows, err := db.QueryContext(ctx, institutionsQuery)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var inst snapshot.Institution
		if err := rows.Scan(&inst.ID, &inst.DisplayName, &inst.CountryCode); err != nil {
			return err
		}
		data.Institutions = append(data.Institutions, inst)
	}
	return rows.Err()
}

// Authors take their country from the last known institution.
const authorsQuery = `
SELECT a.id,
       COALESCE(a.orcid, ''),
       COALESCE(a.display_name, ''),
       COALESCE(CAST(a.display_name_alternatives AS VARCHAR), ''),
       COALESCE(a.last_known_institution, ''),
       COALESCE(i.country_code, ''),
       COALESCE(a.works_count, 0),
       COALESCE(a.cited_by_count, 0)
FROM authors a
LEFT JOIN institutions i ON i.id = a.last_known_institution
ORDER BY a.id`

func loadAuthors(ctx context.Context, db *sql.DB, data *snapshot.Data) error {
	rows, err := db.QueryContext(ctx, authorsQuery)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			a            snapshot.Author
			alternatives string
		)
		if err := rows.Scan(&a.ID, &a.ORCID, &a.DisplayName, &alternatives,
			&a.InstitutionID, &a.CountryCode, &a.WorksCount, &a.CitedByCount); err != nil {
			return err
		}
		a.DisplayNameAlternatives = parseAlternatives(alternatives)
		a.ConceptAffinity = make(map[string]float64)
		data.Authors = append(data.Authors, a)
	}
	return rows.Err()
}

// parseAlternatives accepts a JSON array of names; anything else is ignored.
func parseAlternatives(raw string) []string {
	if raw == "" {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil
	}
	return names
}

const affinitiesQuery = `
SELECT wa.author_id, wc.concept_id, AVG(wc.score) AS affinity
FROM works_authorships wa
JOIN works_concepts wc ON wc.work_id = wa.work_id
WHERE wc.score IS NOT NULL AND wc.score > 0
GROUP BY wa.author_id, wc.concept_id`

func loadAffinities(ctx context.Context, db *sql.DB, data *snapshot.Data) error {
	byID := make(map[string]int, len(data.Authors))
	for i := range data.Authors {
		byID[data.Authors[i].ID] = i
	}

	rows, err := db.QueryContext(ctx, affinitiesQuery)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			authorID, conceptID string
			score               float64
		)
		if err := rows.Scan(&authorID, &conceptID, &score); err != nil {
			return err
		}
		if i, ok := byID[authorID]; ok {
			data.Authors[i].ConceptAffinity[conceptID] = score
		}
	}
	return rows.Err()
}

const coauthorshipsQuery = `
SELECT a.author_id, b.author_id, CAST(COUNT(DISTINCT a.work_id) AS DOUBLE) AS shared
FROM works_authorships a
JOIN works_authorships b ON a.work_id = b.work_id AND a.author_id < b.author_id
GROUP BY a.author_id, b.author_id`

func loadCoauthorships(ctx context.Context, db *sql.DB, data *snapshot.Data) error {
	rows, err := db.QueryContext(ctx, coauthorshipsQuery)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var c snapshot.Coauthorship
		if err := rows.Scan(&c.AuthorA, &c.AuthorB, &c.SharedWorks); err != nil {
			return err
		}
		data.Coauthorships = append(data.Coauthorships, c)
	}
	return rows.Err()
}
