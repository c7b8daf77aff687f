// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// Package testinfra starts throwaway Docker containers for integration tests
// through testcontainers-go. Everything here builds only with the
// integration tag; tests skip themselves when no Docker daemon is reachable.
//
//	func TestAgainstRealNATS(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    nc, err := testinfra.NewNATSContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, nc)
//	    // connect to nc.URL
//	}
//
// The embedded NATS server covers the same code paths in-process; the
// container run checks the refresh stream against a stock nats image.
package testinfra
