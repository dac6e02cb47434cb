// Package cluster - input normalization and weighting.
//
// Design principles:
//   - Deterministic, side-effect free; inputs are never mutated.
//   - Degenerate signals are handled locally, not surfaced as errors.
package cluster

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// normalizeWeights resolves the per-signal weight vector: nil means
// uniform ones; an explicit vector must match the signal count and is
// renormalized to sum to 1 when it does not already (not an error).
//
// Complexity: O(S).
func normalizeWeights(weights []float64, signals int) ([]float64, error) {
	var (
		out = make([]float64, signals)
		i   int
	)
	if weights == nil {
		for i = 0; i < signals; i++ {
			out[i] = 1
		}

		return out, nil
	}
	if len(weights) != signals {
		return nil, ErrShapeMismatch
	}
	// Each entry must be a non-negative finite number: √weight enters the
	// scaling, so a negative entry would poison every distance with NaN.
	for i = 0; i < signals; i++ {
		if weights[i] < 0 || math.IsNaN(weights[i]) || math.IsInf(weights[i], 0) {
			return nil, ErrBadOption
		}
	}
	copy(out, weights)

	sum := floats.Sum(out)
	if sum == 1 {
		return out, nil
	}
	// A zero or overflowing total cannot be renormalized meaningfully.
	if sum == 0 || math.IsInf(sum, 0) {
		return nil, ErrBadOption
	}
	for i = 0; i < signals; i++ {
		out[i] /= sum
	}

	return out, nil
}

// scaleSignal returns a min-max-scaled copy of vals in [0, 1], multiplied
// by √weight. A zero-variance signal (max == min) would divide by zero, so
// it is mapped to the constant 0 instead — the same information content,
// no NaN propagation.
//
// Complexity: O(L).
func scaleSignal(vals []float64, weight float64) []float64 {
	var (
		out  = make([]float64, len(vals))
		lo   = floats.Min(vals)
		hi   = floats.Max(vals)
		span = hi - lo
		i    int
	)
	if span == 0 {
		return out // all zeros: degenerate signal carries no shape
	}

	w := math.Sqrt(weight)
	for i = 0; i < len(vals); i++ {
		out[i] = (vals[i] - lo) / span * w
	}

	return out
}
