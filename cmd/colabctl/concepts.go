// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

func newConceptsCmd(src *sourceFlags) *cobra.Command {
	var limit int
	var authors bool

	cmd := &cobra.Command{
		Use:   "concepts <query>",
		Short: "Search concept (or author) names in a dataset",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context(), src)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if authors {
				fmt.Fprintln(tw, "ID\tNAME\tCOUNTRY\tINSTITUTION")
				for _, a := range snap.SearchAuthors(query, limit) {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.DisplayName, a.CountryCode, snap.InstitutionName(a.InstitutionID))
				}
			} else {
				fmt.Fprintln(tw, "ID\tNAME\tLEVEL")
				for _, c := range snap.Catalog().Search(query, limit) {
					fmt.Fprintf(tw, "%s\t%s\t%d\n", c.ID, c.DisplayName, c.Level)
				}
			}
			return tw.Flush()
		},
	}

	addSourceFlags(cmd, src)
	cmd.Flags().IntVar(&limit, "limit", snapshot.DefaultSearchLimit, "maximum results")
	cmd.Flags().BoolVar(&authors, "authors", false, "search author names instead of concepts")
	return cmd
}
