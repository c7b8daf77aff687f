// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/colaborador-ia/colaborador/internal/config"
	"github.com/colaborador-ia/colaborador/internal/logging"
	"github.com/colaborador-ia/colaborador/internal/snapshot"
	"github.com/colaborador-ia/colaborador/internal/source"
)

// sourceFlags select the dataset offline commands read.
type sourceFlags struct {
	kind          string
	file          string
	duckdb        string
	edgeWeighting string
	timeout       time.Duration
}

func newRootCmd() *cobra.Command {
	var verbose bool
	src := &sourceFlags{}

	root := &cobra.Command{
		Use:           "colabctl",
		Short:         "Inspect snapshots and operate a Colaborador IA server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if verbose {
				level = "debug"
			}
			logging.Init(logging.Config{Level: level, Format: "console"})
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newValidateCmd(src),
		newConceptsCmd(src),
		newRecommendCmd(src),
		newRefreshCmd(),
	)
	return root
}

// addSourceFlags registers the dataset flags on an offline command.
func addSourceFlags(cmd *cobra.Command, src *sourceFlags) {
	cmd.Flags().StringVar(&src.kind, "source", config.SourceFile, "snapshot source: file or duckdb")
	cmd.Flags().StringVar(&src.file, "file", "snapshot.json", "JSON bundle read by the file source")
	cmd.Flags().StringVar(&src.duckdb, "duckdb", "", "database read by the duckdb source")
	cmd.Flags().StringVar(&src.edgeWeighting, "edge-weighting", string(snapshot.WeightLog1p), "co-authorship edge weighting: log1p or raw")
	cmd.Flags().DurationVar(&src.timeout, "timeout", 5*time.Minute, "load timeout")
}

// loadSnapshot loads and indexes the dataset selected by src.
func loadSnapshot(ctx context.Context, src *sourceFlags) (*snapshot.Snapshot, error) {
	s, err := source.New(&config.SnapshotConfig{
		Source:     src.kind,
		FilePath:   src.file,
		DuckDBPath: src.duckdb,
		Breaker:    config.BreakerConfig{MaxFailures: 1, OpenTimeout: time.Minute, HalfOpenRequests: 1},
	})
	if err != nil {
		return nil, err
	}

	if src.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, src.timeout)
		defer cancel()
	}

	data, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.Name(), err)
	}
	snap, err := snapshot.Build(data, snapshot.BuildOptions{EdgeWeighting: snapshot.EdgeWeighting(src.edgeWeighting)})
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	return snap, nil
}

// printJSON writes v indented to the command's output.
func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
