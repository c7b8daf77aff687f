// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(src *sourceFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a dataset, build the snapshot and print its statistics",
		Long: "Runs the same load and build the server performs on refresh. A non-zero exit " +
			"means the server would keep its previous snapshot.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context(), src)
			if err != nil {
				return err
			}
			stats := snap.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version:      %s\n", stats.Version)
			fmt.Fprintf(out, "concepts:     %d\n", stats.Concepts)
			fmt.Fprintf(out, "institutions: %d\n", stats.Institutions)
			fmt.Fprintf(out, "authors:      %d\n", stats.Authors)
			fmt.Fprintf(out, "edges:        %d\n", stats.Edges)
			return nil
		},
	}
	addSourceFlags(cmd, src)
	return cmd
}
