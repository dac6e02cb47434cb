// Package cluster - period reshaping.
package cluster

import "gonum.org/v1/gonum/mat"

// Reshape splits a 1-D signal of length L into a periodLength×N matrix
// with periods as columns (column-major: sample t of period d is
// vals[d·periodLength + t]).
//
// Contracts:
//   - periodLength ≥ 1 and L an exact multiple of it; any truncation or
//     padding is the caller's job, upstream. A remainder is a shape error,
//     never a silent truncation.
//   - vals must be non-empty.
//
// Complexity: O(L) time and memory.
func Reshape(vals []float64, periodLength int) (*mat.Dense, error) {
	if len(vals) == 0 {
		return nil, ErrEmptyInput
	}
	if periodLength < 1 || len(vals)%periodLength != 0 {
		return nil, ErrShapeMismatch
	}

	var (
		n   = len(vals) / periodLength
		out = mat.NewDense(periodLength, n, nil)
		d   int
		t   int
	)
	for d = 0; d < n; d++ {
		for t = 0; t < periodLength; t++ {
			out.Set(t, d, vals[d*periodLength+t])
		}
	}

	return out, nil
}
