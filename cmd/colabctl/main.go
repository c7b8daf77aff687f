// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// Command colabctl inspects snapshot bundles and drives a running server.
//
//	colabctl validate --file snapshot.json
//	colabctl concepts "machine learn" --file snapshot.json
//	colabctl recommend --file snapshot.json --concept C41008148=1 --author A5023888391
//	colabctl refresh --server http://localhost:8000
//	colabctl refresh --nats nats://127.0.0.1:4222 --reason etl   (build tag nats)
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
