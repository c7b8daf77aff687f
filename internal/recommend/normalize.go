// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package recommend

import "math"

// NormalizedScore is a raw scorer output rescaled against the other scores
// of the same query.
type NormalizedScore struct {
	Raw float64

	// MinMax is (raw-min)/(max-min), or 1.0 when every score is equal.
	MinMax float64

	// Z is (raw-mean)/stddev (population), or 0 when stddev is 0.
	Z float64
}

// Normalize rescales raw scores onto [0, 1] using the bounds of this result
// set only. The top raw score always maps to 1.0 and ordering is preserved.
// When all scores are equal, including a single score, each maps to 1.0.
func Normalize(raw []float64) []NormalizedScore {
	out := make([]NormalizedScore, len(raw))
	if len(raw) == 0 {
		return out
	}

	lo, hi := raw[0], raw[0]
	var sum float64
	for _, v := range raw {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		sum += v
	}
	mean := sum / float64(len(raw))

	var sq float64
	for _, v := range raw {
		d := v - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(raw)))

	span := hi - lo
	for i, v := range raw {
		n := NormalizedScore{Raw: v, MinMax: 1.0}
		if span > 0 {
			n.MinMax = (v - lo) / span
		}
		if std > 0 {
			n.Z = (v - mean) / std
		}
		out[i] = n
	}
	return out
}
