// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package recommend

import "errors"

// Request errors. All of them are detected before any scorer runs.
var (
	// ErrEmptyQuery means neither a concept vector nor a seed author was supplied.
	ErrEmptyQuery = errors.New("empty query: supply concept_vector, author_id, or both")

	// ErrUnknownAuthor means the seed author is not in the profile store.
	// A known author without collaborations is not an error.
	ErrUnknownAuthor = errors.New("unknown author")

	// ErrInvalidWeight means alpha or beta is negative or not finite.
	ErrInvalidWeight = errors.New("invalid weight")

	// ErrInvalidCountry means country_code is not a recognized Latin American code.
	ErrInvalidCountry = errors.New("invalid country code")

	// ErrInvalidOrder means order_by is not one of similarity, citation_count, work_count.
	ErrInvalidOrder = errors.New("invalid order_by")

	// ErrTooManyConcepts means the concept vector exceeds the configured size.
	ErrTooManyConcepts = errors.New("too many concepts")
)

// ErrSnapshotUnavailable means no snapshot has been loaded yet. Callers
// should retry later; the engine never answers with an empty result instead.
var ErrSnapshotUnavailable = errors.New("snapshot unavailable")

// IsClientError reports whether err was caused by the request itself.
func IsClientError(err error) bool {
	return errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrUnknownAuthor) ||
		errors.Is(err, ErrInvalidWeight) ||
		errors.Is(err, ErrInvalidCountry) ||
		errors.Is(err, ErrInvalidOrder) ||
		errors.Is(err, ErrTooManyConcepts)
}
