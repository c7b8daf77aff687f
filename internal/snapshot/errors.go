// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package snapshot

import "errors"

// Build errors. Callers should use errors.Is; messages carry the offending ids.
var (
	ErrNilData          = errors.New("snapshot data is nil")
	ErrEmptyID          = errors.New("empty id")
	ErrDuplicateConcept = errors.New("duplicate concept")
	ErrDuplicateAuthor  = errors.New("duplicate author")
	ErrInvalidData      = errors.New("invalid snapshot data")
)
