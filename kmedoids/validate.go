// Package kmedoids - validation utilities shared by the solver entrypoint.
//
// Design principles (matching the rest of the library):
//   - Deterministic, side-effect free functions.
//   - No logging, no panics on user input - only sentinel errors from types.go.
//   - O(n²) worst case where n is the matrix order; no hidden allocations.
package kmedoids

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// diagTol is the structural tolerance for the zero-diagonal check. It is
// independent from Options.Eps (which governs incumbent acceptance).
const diagTol = 1e-12

// validateOptions checks internal consistency of Options without touching
// the matrix.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	// Negative durations are undefined; 0 means "unlimited".
	if opts.TimeLimit < 0 {
		return ErrBadOption
	}
	// A gap of 1 (or more) would accept any feasible point as "optimal".
	if opts.GapTolerance < 0 || opts.GapTolerance >= 1 {
		return ErrBadOption
	}
	// A negative epsilon would invert the acceptance logic.
	if opts.Eps < 0 {
		return ErrBadOption
	}

	return nil
}

// validateDistances performs full matrix validation:
//   - non-nil, order n ≥ 1,
//   - diagonal ≈ 0 (|d_ii| ≤ diagTol),
//   - no negative entries,
//   - no NaN or ±Inf anywhere.
//
// Symmetry needs no scan: mat.SymDense stores a single triangle, so
// D[i,j] == D[j,i] holds by construction.
//
// Returns n (matrix order) on success.
//
// Complexity: O(n²).
func validateDistances(d *mat.SymDense) (int, error) {
	// Stage 1: shape.
	if d == nil {
		return 0, ErrNilMatrix
	}
	var n int
	n = d.SymmetricDim()
	if n <= 0 {
		return 0, ErrNilMatrix
	}

	// Stage 2: diagonal.
	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		v = d.At(i, i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, ErrBadDistance
		}
		if v < -diagTol || v > diagTol {
			return 0, ErrNonZeroDiagonal
		}
	}

	// Stage 3: upper triangle (the lower mirrors it).
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			v = d.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, ErrBadDistance
			}
			if v < 0 {
				return 0, ErrNegativeDistance
			}
		}
	}

	return n, nil
}

// validateClusterCount verifies 1 ≤ k ≤ n.
//
// Complexity: O(1).
func validateClusterCount(k, n int) error {
	if k < 1 || k > n {
		return ErrBadClusterCount
	}

	return nil
}
