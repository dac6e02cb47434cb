// Package kmedoids - public entrypoint.
//
// Solve validates inputs, runs the exact engine, extracts the (Y, X)
// encoding demanded by downstream consumers, and re-checks every structural
// invariant before handing the result over.
//
// Design principles:
//   - Deterministic: index-ordered branching and tie-breaks; no randomness.
//   - Strict sentinels: only errors from types.go.
//   - Soft deadlines: an elapsed budget returns the incumbent, never an error.
package kmedoids

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Solve computes an exact k-medoids selection over the symmetric
// dissimilarity matrix d.
//
// Contracts:
//   - d must be non-nil with zero diagonal, finite non-negative entries.
//   - 1 ≤ k ≤ n. The problem is feasible for the whole range; k == n is the
//     identity selection with objective 0.
//   - opts per types.go; DefaultOptions() is a sensible starting point.
//
// Termination: with a zero GapTolerance and enough time the result is
// provably optimal (Proven == true). When the time budget elapses first,
// the best incumbent is returned successfully with AchievedGap > 0.
//
// Errors: strict sentinels from types.go; ErrInternal signals an engine
// bug, never bad caller input.
//
// Complexity: exponential worst case (exact search); see doc.go.
func Solve(d *mat.SymDense, k int, opts Options) (*Result, error) {
	// Stage 1 - options, matrix, parameter validation (fail fast, in order).
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	n, err := validateDistances(d)
	if err != nil {
		return nil, err
	}
	if err = validateClusterCount(k, n); err != nil {
		return nil, err
	}

	// Stage 2 - trivial identity selection (every point its own medoid).
	if k == n {
		return identityResult(n), nil
	}

	// Stage 3 - engine setup.
	var e engine
	e.n = n
	e.k = k
	e.eps = opts.Eps
	e.gap = opts.GapTolerance
	if opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(opts.TimeLimit)
	}
	e.prefetch(d)
	e.buildSuffixMin()
	e.chosen = make([]int, k)
	e.bestSet = make([]int, k)
	e.bestCost = math.Inf(1)
	e.frontierLB = math.Inf(1)
	e.bestTo = make([][]float64, k+1)
	for depth := 0; depth <= k; depth++ {
		e.bestTo[depth] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		e.bestTo[0][i] = math.Inf(1)
	}

	// Stage 4 - seed the incumbent, then search.
	e.seedIncumbent()
	e.dfs(0, 0)

	// Stage 5 - finalization. The greedy seed guarantees an incumbent, so
	// an empty result here is an internal inconsistency by contract.
	if !e.foundAny || math.IsInf(e.bestCost, 0) {
		return nil, ErrInternal
	}
	res := buildResult(&e)
	if err = verifyResult(res, n, k); err != nil {
		return nil, err
	}

	return res, nil
}

// identityResult encodes the k == n solution: all-ones Y, identity X,
// objective 0. No search is needed and optimality is proven by definition.
func identityResult(n int) *Result {
	var (
		medoids    = make([]int, n)
		y          = make([]int, n)
		x          = make([][]int, n)
		assignment = make([]int, n)
		j          int
	)
	for j = 0; j < n; j++ {
		medoids[j] = j
		y[j] = 1
		assignment[j] = j
		row := make([]int, n)
		row[j] = 1
		x[j] = row
	}

	return &Result{
		Medoids:    medoids,
		Y:          y,
		X:          x,
		Assignment: assignment,
		Objective:  0,
		Proven:     true,
	}
}

// buildResult materializes (Y, X, Assignment, Objective, gap bookkeeping)
// from the engine's best medoid set.
//
// Assignment rule: nearest open medoid, smallest-index tie-break; every
// medoid is then explicitly self-assigned (duplicate points could otherwise
// tie a medoid onto an earlier twin at distance zero, breaking X[j,j] ≥ Y[j]).
//
// Complexity: O(n·k) assignment + O(n²) for the dense X.
func buildResult(e *engine) *Result {
	var (
		n          = e.n
		medoids    = make([]int, e.k)
		y          = make([]int, n)
		x          = make([][]int, n)
		assignment = make([]int, n)
		objective  float64
		i, mi, m   int
		best, v    float64
	)
	copy(medoids, e.bestSet)
	for _, m = range medoids {
		y[m] = 1
	}
	for i = 0; i < n; i++ {
		best, assignment[i] = math.Inf(1), -1
		for mi = 0; mi < e.k; mi++ {
			m = medoids[mi]
			if v = e.at(i, m); v < best {
				best, assignment[i] = v, m
			}
		}
	}
	for _, m = range medoids {
		assignment[m] = m
	}
	for i = 0; i < n; i++ {
		row := make([]int, n)
		row[assignment[i]] = 1
		x[i] = row
		objective += e.at(i, assignment[i])
	}

	// Proven gap to the abandoned frontier (0 when the search was exhaustive
	// or every abandoned subtree is provably no better than the incumbent).
	var gap float64
	if !math.IsInf(e.frontierLB, 0) && e.frontierLB < e.bestCost-e.eps && e.bestCost > 0 {
		gap = (e.bestCost - e.frontierLB) / e.bestCost
		if gap < 0 {
			gap = 0
		}
		if gap > 1 {
			gap = 1
		}
	}

	return &Result{
		Medoids:     medoids,
		Y:           y,
		X:           x,
		Assignment:  assignment,
		Objective:   round1e9(objective),
		AchievedGap: gap,
		Proven:      gap == 0,
	}
}

// verifyResult re-checks every structural invariant of the (Y, X) encoding.
// A violation means the engine (not the caller) misbehaved: ErrInternal.
//
// Complexity: O(n²).
func verifyResult(res *Result, n, k int) error {
	var (
		i, j    int
		sumY    int
		sumDiag int
		rowSum  int
	)
	for j = 0; j < n; j++ {
		sumY += res.Y[j]
		sumDiag += res.X[j][j]
		// An opened medoid must be assigned to itself.
		if res.X[j][j] < res.Y[j] {
			return ErrInternal
		}
	}
	if sumY != k || sumDiag != k {
		return ErrInternal
	}
	for i = 0; i < n; i++ {
		rowSum = 0
		for j = 0; j < n; j++ {
			rowSum += res.X[i][j]
			// No assignment to a closed medoid.
			if res.X[i][j] > res.Y[j] {
				return ErrInternal
			}
		}
		if rowSum != 1 {
			return ErrInternal
		}
	}

	return nil
}
