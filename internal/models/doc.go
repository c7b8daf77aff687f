// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// Package models defines the JSON bodies of the HTTP API other than the
// recommendation response, which is owned by the recommend package.
package models
