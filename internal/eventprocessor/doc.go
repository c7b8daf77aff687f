// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

/*
Package eventprocessor consumes snapshot refresh requests from NATS JetStream.

A data pipeline that finishes writing a new OpenAlex extract publishes a
RefreshRequest on the refresh subject (default "snapshot.refresh"). Every
replica runs a durable queue-group consumer, so one replica picks the
request up and calls the refresher. The refresher is rate limited, so a
burst of requests collapses into a single rebuild.

# Components

  - EmbeddedServer: an in-process NATS server with JetStream, for
    single-node deployments
  - EnsureRefreshStream: creates or updates the JetStream stream that
    stores refresh requests
  - RefreshHandler: decodes a message and calls Trigger; always acks
    except on cancellation
  - RefreshSubscriber: a Watermill router (Recoverer and Retry middleware)
    feeding RefreshHandler
  - RefreshPublisher: publishes a RefreshRequest, used by colabctl

# Build Tags

The NATS client, server and Watermill NATS adapter are compiled only with
the nats build tag:

	go build -tags nats ./cmd/server

Without the tag, constructors return ErrNATSNotAvailable and the server
keeps serving with the periodic and file-watch refresh triggers only.
RefreshHandler and the request codec carry no tag.
*/
package eventprocessor
