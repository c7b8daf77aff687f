// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// Package validation checks the shape of decoded request bodies with
// go-playground/validator v10.
//
// It rejects malformed input (missing concept ids, oversized vectors, a
// country code that is not two letters) before the request reaches the
// engine. Semantic checks such as "is this a supported country" or "is the
// seed author known" stay in package recommend, which owns the data.
//
// Error field names are the JSON names, with the path for nested values:
//
//	concept_vector[3].id is required
package validation
