// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

/*
Package supervisor runs the server's long-lived goroutines under a suture
supervisor tree.

	colaborador (root)
	├── data-layer
	│   ├── snapshot-scheduler   periodic rebuild
	│   └── snapshot-watcher     rebuild on file change (file source only)
	├── messaging-layer
	│   └── nats-refresh         NATS refresh subscriber (build tag nats)
	└── api-layer
	    └── http-server

Each service implements suture.Service. A service that returns an error
is restarted with backoff; after FailureThreshold failures within the
decay window its supervisor pauses for FailureBackoff. Supervisor events
are logged through sutureslog, backed by the zerolog output.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewRefreshScheduler(refresher, 6*time.Hour, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, 15*time.Second))
	err = tree.Serve(ctx)

The service wrappers live in the services subpackage.
*/
package supervisor
