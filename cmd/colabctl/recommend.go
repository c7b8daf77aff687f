// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/colaborador-ia/colaborador/internal/logging"
	"github.com/colaborador-ia/colaborador/internal/recommend"
	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

func newRecommendCmd(src *sourceFlags) *cobra.Command {
	var (
		concepts []string
		author   string
		alpha    float64
		beta     float64
		orderBy  string
		limit    int
		country  string
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run one recommendation offline against a dataset",
		Long: "Concepts are given as ID or ID=WEIGHT. With both --concept and --author the " +
			"hybrid blend is used; alpha and beta apply only then.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vector, err := parseConceptFlags(concepts)
			if err != nil {
				return err
			}

			snap, err := loadSnapshot(cmd.Context(), src)
			if err != nil {
				return err
			}
			store := snapshot.NewStore()
			store.Swap(snap)

			engine, err := recommend.NewEngine(recommend.DefaultConfig(), store, logging.Logger())
			if err != nil {
				return err
			}

			req := recommend.Request{
				ConceptVector: vector,
				AuthorID:      author,
				OrderBy:       recommend.OrderBy(orderBy),
				CountryCode:   strings.ToUpper(country),
			}
			if cmd.Flags().Changed("alpha") {
				req.Alpha = &alpha
			}
			if cmd.Flags().Changed("beta") {
				req.Beta = &beta
			}
			if cmd.Flags().Changed("limit") {
				req.Limit = &limit
			}

			resp, err := engine.Recommend(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}

	addSourceFlags(cmd, src)
	cmd.Flags().StringSliceVarP(&concepts, "concept", "c", nil, "query concept as ID or ID=WEIGHT (repeatable)")
	cmd.Flags().StringVarP(&author, "author", "a", "", "seed author id")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.5, "content-based weight in hybrid mode")
	cmd.Flags().Float64Var(&beta, "beta", 0.5, "collaborative weight in hybrid mode")
	cmd.Flags().StringVar(&orderBy, "order-by", string(recommend.OrderSimilarity), "similarity, citation_count or work_count")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum recommendations")
	cmd.Flags().StringVar(&country, "country", "", "restrict to one ISO 3166-1 alpha-2 country")
	return cmd
}

// parseConceptFlags turns ID or ID=WEIGHT values into a concept vector.
func parseConceptFlags(values []string) ([]recommend.ConceptWeight, error) {
	vector := make([]recommend.ConceptWeight, 0, len(values))
	for _, v := range values {
		id, raw, hasWeight := strings.Cut(strings.TrimSpace(v), "=")
		if id == "" {
			return nil, fmt.Errorf("invalid concept %q: empty id", v)
		}
		cw := recommend.ConceptWeight{ID: id}
		if hasWeight {
			w, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid concept weight %q: %w", v, err)
			}
			cw.Weight = &w
		}
		vector = append(vector, cw)
	}
	return vector, nil
}
