// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package recommend

import (
	"errors"
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        []float64
		wantMinMax []float64
		wantZ      []float64
	}{
		{name: "empty", raw: nil, wantMinMax: []float64{}, wantZ: []float64{}},
		{name: "single score maps to one", raw: []float64{0.3}, wantMinMax: []float64{1}, wantZ: []float64{0}},
		{name: "all equal map to one", raw: []float64{2, 2, 2}, wantMinMax: []float64{1, 1, 1}, wantZ: []float64{0, 0, 0}},
		{name: "spread", raw: []float64{1, 3, 2}, wantMinMax: []float64{0, 1, 0.5},
			wantZ: []float64{-math.Sqrt(1.5), math.Sqrt(1.5), 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tt.raw)
			if len(got) != len(tt.wantMinMax) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.wantMinMax))
			}
			for i := range got {
				if !approxEqual(got[i].MinMax, tt.wantMinMax[i]) {
					t.Errorf("[%d].MinMax = %v, want %v", i, got[i].MinMax, tt.wantMinMax[i])
				}
				if !approxEqual(got[i].Z, tt.wantZ[i]) {
					t.Errorf("[%d].Z = %v, want %v", i, got[i].Z, tt.wantZ[i])
				}
				if got[i].Raw != tt.raw[i] {
					t.Errorf("[%d].Raw = %v, want %v", i, got[i].Raw, tt.raw[i])
				}
			}
		})
	}
}

func TestNormalize_PreservesOrder(t *testing.T) {
	t.Parallel()
	raw := []float64{0.9, 0.1, 0.5, 0.7, 0.3}
	got := Normalize(raw)
	for i := range raw {
		for j := range raw {
			if raw[i] > raw[j] && got[i].MinMax <= got[j].MinMax {
				t.Errorf("order broken: raw %v > %v but normalized %v <= %v", raw[i], raw[j], got[i].MinMax, got[j].MinMax)
			}
		}
	}
}

func TestWeights_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		w       Weights
		wantErr bool
	}{
		{name: "defaults", w: Weights{Alpha: 0.5, Beta: 0.5}},
		{name: "zero both", w: Weights{}},
		{name: "sum above one", w: Weights{Alpha: 1, Beta: 1}},
		{name: "negative alpha", w: Weights{Alpha: -0.1, Beta: 0.5}, wantErr: true},
		{name: "negative beta", w: Weights{Alpha: 0.5, Beta: -1}, wantErr: true},
		{name: "NaN", w: Weights{Alpha: math.NaN()}, wantErr: true},
		{name: "Inf", w: Weights{Beta: math.Inf(1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.w.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWeight) {
				t.Errorf("Validate() = %v, want ErrInvalidWeight", err)
			}
		})
	}
}

func TestBlend(t *testing.T) {
	t.Parallel()

	cb := map[int]float64{1: 1.0, 2: 0.5}
	cf := map[int]float64{2: 1.0, 3: 0.4}

	got := Blend(cb, cf, Weights{Alpha: 0.5, Beta: 0.5})
	want := map[int]float64{1: 0.5, 2: 0.75, 3: 0.2}

	if len(got) != len(want) {
		t.Fatalf("Blend() covers %d authors, want union of %d", len(got), len(want))
	}
	for author, w := range want {
		if !approxEqual(got[author], w) {
			t.Errorf("author %d = %v, want %v", author, got[author], w)
		}
	}
}

func TestBlend_NotRenormalized(t *testing.T) {
	t.Parallel()
	got := Blend(map[int]float64{1: 1}, map[int]float64{1: 1}, Weights{Alpha: 0.2, Beta: 0.2})
	if !approxEqual(got[1], 0.4) {
		t.Errorf("Blend() = %v, want 0.4", got[1])
	}
}

func TestClampUnit(t *testing.T) {
	t.Parallel()
	for in, want := range map[float64]float64{-0.5: 0, 0: 0, 0.4: 0.4, 1: 1, 1.7: 1} {
		if got := clampUnit(in); got != want {
			t.Errorf("clampUnit(%v) = %v, want %v", in, got, want)
		}
	}
}

func pipelineCandidates() []Recommendation {
	return []Recommendation{
		{AuthorID: "A3", CountryCode: "BR", SimilarityScore: 0.5, CitedByCount: 10, WorksCount: 7},
		{AuthorID: "A1", CountryCode: "AR", SimilarityScore: 0.9, CitedByCount: 10, WorksCount: 2},
		{AuthorID: "A2", CountryCode: "BR", SimilarityScore: 0.5, CitedByCount: 99, WorksCount: 7},
		{AuthorID: "A4", CountryCode: "MX", SimilarityScore: 0.1, CitedByCount: 1, WorksCount: 1},
	}
}

func TestApplyPipeline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      PipelineOptions
		want      []string
		wantTotal int
	}{
		{
			name:      "similarity with id tie-break",
			opts:      PipelineOptions{OrderBy: OrderSimilarity, Limit: 10},
			want:      []string{"A1", "A2", "A3", "A4"},
			wantTotal: 4,
		},
		{
			name:      "citation count",
			opts:      PipelineOptions{OrderBy: OrderCitationCount, Limit: 10},
			want:      []string{"A2", "A1", "A3", "A4"},
			wantTotal: 4,
		},
		{
			name:      "work count",
			opts:      PipelineOptions{OrderBy: OrderWorkCount, Limit: 10},
			want:      []string{"A2", "A3", "A1", "A4"},
			wantTotal: 4,
		},
		{
			name:      "country filter before sort",
			opts:      PipelineOptions{CountryCode: "br", OrderBy: OrderSimilarity, Limit: 10},
			want:      []string{"A2", "A3"},
			wantTotal: 2,
		},
		{
			name:      "total counts before truncation",
			opts:      PipelineOptions{OrderBy: OrderSimilarity, Limit: 2},
			want:      []string{"A1", "A2"},
			wantTotal: 4,
		},
		{
			name:      "country with no authors",
			opts:      PipelineOptions{CountryCode: "UY", OrderBy: OrderSimilarity, Limit: 10},
			want:      []string{},
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			page, total := ApplyPipeline(pipelineCandidates(), tt.opts)
			if got := authorIDs(page); !equalStrings(got, tt.want) {
				t.Errorf("page = %v, want %v", got, tt.want)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if len(page) != min(tt.opts.Limit, total) {
				t.Errorf("len(page) = %d, want min(limit, total) = %d", len(page), min(tt.opts.Limit, total))
			}
		})
	}
}

func TestClampLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		limit *int
		want  int
	}{
		{name: "omitted", limit: nil, want: 50},
		{name: "in range", limit: ptr(20), want: 20},
		{name: "zero", limit: ptr(0), want: 1},
		{name: "negative", limit: ptr(-3), want: 1},
		{name: "max", limit: ptr(200), want: 200},
		{name: "above max", limit: ptr(201), want: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClampLimit(tt.limit, 50, 200); got != tt.want {
				t.Errorf("ClampLimit() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want bool
	}{
		{"BR", true},
		{"br", true},
		{" mx ", true},
		{"UY", true},
		{"PR", false},
		{"US", false},
		{"ES", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsLatamCountry(tt.code); got != tt.want {
			t.Errorf("IsLatamCountry(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}

	codes := LatamCountries()
	if len(codes) != 19 {
		t.Errorf("LatamCountries() has %d codes, want 19", len(codes))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("LatamCountries() not sorted at %d: %v", i, codes)
		}
	}
	if CountryName("ar") != "Argentina" {
		t.Errorf("CountryName(ar) = %q", CountryName("ar"))
	}
}

func TestIsClientError(t *testing.T) {
	t.Parallel()
	for _, err := range []error{ErrEmptyQuery, ErrUnknownAuthor, ErrInvalidWeight, ErrInvalidCountry, ErrInvalidOrder, ErrTooManyConcepts} {
		if !IsClientError(err) {
			t.Errorf("IsClientError(%v) = false", err)
		}
	}
	if IsClientError(ErrSnapshotUnavailable) {
		t.Error("ErrSnapshotUnavailable must not be a client error")
	}
	if IsClientError(errors.New("boom")) {
		t.Error("unknown error must not be a client error")
	}
}
