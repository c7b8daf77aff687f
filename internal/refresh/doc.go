// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// Package refresh owns the snapshot lifecycle: load from a source, build,
// swap into the store, persist the dataset and publish metrics.
//
// Three entry points:
//
//   - Warm at startup, with a fallback to the persisted dataset
//   - Refresh for the periodic ticker
//   - Trigger for external requests, rate limited with golang.org/x/time/rate
package refresh
