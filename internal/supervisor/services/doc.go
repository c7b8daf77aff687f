// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// Package services adapts the server's long-running components to
// suture.Service.
//
//   - HTTPServerService: ListenAndServe with graceful Shutdown
//   - RefreshScheduler: periodic snapshot rebuild
//   - WatchService: fsnotify watcher that triggers a rebuild when the
//     snapshot file changes
//   - NATSComponentsService: Start/Shutdown lifecycle of the NATS refresh
//     subscriber
//
// Each service depends on a small interface instead of a concrete type,
// so the package does not import the api or eventprocessor packages.
package services
