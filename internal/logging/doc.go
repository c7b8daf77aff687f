// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// Package logging provides the process-wide zerolog logger.
//
// JSON output is the default; console output is meant for local runs.
// Components take a zerolog.Logger in their constructors and tag it with
// a component field, so the global logger is mostly used from main and
// from HTTP middleware.
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logger := logging.WithComponent("refresh")
//	logger.Info().Str("version", v).Msg("snapshot swapped")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated
// event is never written.
//
// Libraries that only speak log/slog receive a handler backed by the same
// zerolog output through [NewSlogLogger].
package logging
