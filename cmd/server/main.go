// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/colaborador-ia/colaborador/docs" // Import generated swagger docs
	"github.com/colaborador-ia/colaborador/internal/api"
	"github.com/colaborador-ia/colaborador/internal/config"
	"github.com/colaborador-ia/colaborador/internal/logging"
	"github.com/colaborador-ia/colaborador/internal/middleware"
	"github.com/colaborador-ia/colaborador/internal/supervisor"
	"github.com/colaborador-ia/colaborador/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("snapshot_source", cfg.Snapshot.Source).
		Msg("Starting Colaborador IA with supervisor tree")

	snap, err := initSnapshot(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize snapshot pipeline")
	}
	defer snap.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	warmSnapshot(ctx, snap)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// === DATA LAYER ===
	if cfg.Snapshot.RefreshInterval > 0 {
		tree.AddDataService(services.NewRefreshScheduler(snap.Refresher, cfg.Snapshot.RefreshInterval,
			logging.WithComponent("refresh-scheduler")))
		logging.Info().Dur("interval", cfg.Snapshot.RefreshInterval).Msg("Snapshot refresh scheduler added")
	}
	if cfg.Snapshot.Watch {
		if cfg.Snapshot.Source == config.SourceFile {
			tree.AddDataService(services.NewWatchService(cfg.Snapshot.FilePath, snap.Refresher,
				cfg.Snapshot.WatchDebounce, logging.WithComponent("snapshot-watch")))
			logging.Info().Str("path", cfg.Snapshot.FilePath).Msg("Snapshot file watcher added")
		} else {
			logging.Warn().Str("source", cfg.Snapshot.Source).Msg("SNAPSHOT_WATCH only applies to the file source, ignoring")
		}
	}

	// === MESSAGING LAYER ===
	natsComponents, err := InitNATS(cfg, snap.Refresher)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize NATS, continuing without refresh triggers")
	} else if natsComponents != nil {
		tree.AddMessagingService(services.NewNATSComponentsService(natsComponents, cfg.NATS.CloseTimeout))
		logging.Info().Msg("NATS refresh subscriber added to supervisor tree")
	}

	// === API LAYER ===
	perf := middleware.NewPerformanceMonitor(1000, time.Second, logging.WithComponent("performance"))
	handler := api.NewHandler(api.HandlerDeps{
		Engine:    snap.Engine,
		Store:     snap.Store,
		Refresher: snap.Refresher,
		Perf:      perf,
		Config:    cfg,
		Version:   version,
	})
	chiMW := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	router := api.NewRouter(handler, chiMW)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// The channel delivers exactly one result and is never closed.
	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
