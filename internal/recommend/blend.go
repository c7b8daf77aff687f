// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package recommend

import (
	"fmt"
	"math"
)

// Weights are the hybrid blend coefficients. They are used as given and
// need not sum to 1.
type Weights struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// Validate rejects negative or non-finite weights.
func (w Weights) Validate() error {
	if w.Alpha < 0 || math.IsNaN(w.Alpha) || math.IsInf(w.Alpha, 0) {
		return fmt.Errorf("%w: alpha must be a non-negative number, got %v", ErrInvalidWeight, w.Alpha)
	}
	if w.Beta < 0 || math.IsNaN(w.Beta) || math.IsInf(w.Beta, 0) {
		return fmt.Errorf("%w: beta must be a non-negative number, got %v", ErrInvalidWeight, w.Beta)
	}
	return nil
}

// Blend combines normalized CB and CF scores keyed by author:
//
//	combined = alpha*cb + beta*cf
//
// The result covers the union of both key sets. An author missing from one
// side contributes 0 for that side, so an author strongly connected in the
// graph but topically unscored keeps beta*cf instead of being averaged down.
func Blend(cb, cf map[int]float64, w Weights) map[int]float64 {
	out := make(map[int]float64, len(cb)+len(cf))
	for author, score := range cb {
		out[author] = w.Alpha * score
	}
	for author, score := range cf {
		out[author] += w.Beta * score
	}
	return out
}

// clampUnit bounds a score to [0, 1]; blends with alpha+beta > 1 can exceed 1.
func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
