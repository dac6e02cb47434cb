package kmedoids

import (
	"errors"
	"time"
)

// Strict sentinel errors. Callers are expected to match with errors.Is;
// no other error values escape this package.
var (
	// ErrNilMatrix indicates a nil distance matrix.
	ErrNilMatrix = errors.New("kmedoids: nil distance matrix")

	// ErrBadClusterCount indicates k outside the feasible range [1, n].
	ErrBadClusterCount = errors.New("kmedoids: cluster count outside [1, n]")

	// ErrBadOption indicates a nonsensical option value (negative time
	// limit, gap tolerance outside [0, 1), negative epsilon).
	ErrBadOption = errors.New("kmedoids: invalid option value")

	// ErrNegativeDistance indicates a negative dissimilarity entry.
	ErrNegativeDistance = errors.New("kmedoids: negative distance entry")

	// ErrNonZeroDiagonal indicates a self-distance that is not (close to) zero.
	ErrNonZeroDiagonal = errors.New("kmedoids: non-zero diagonal entry")

	// ErrBadDistance indicates a NaN or infinite dissimilarity entry.
	ErrBadDistance = errors.New("kmedoids: NaN or Inf distance entry")

	// ErrInternal indicates the engine finished without a feasible
	// selection. The k-medoids formulation is feasible for every
	// 1 ≤ k ≤ n, so this is an engine bug, never a caller error.
	ErrInternal = errors.New("kmedoids: internal consistency failure")
)

// Options configures a single Solve call. There is no process-wide solver
// state; every call carries its own budget and tolerances.
//
// Fields:
//   - TimeLimit    — wall-clock budget for the search. 0 means unlimited.
//     When the budget elapses the best incumbent found so far is returned
//     as a successful result with Proven=false and AchievedGap set.
//   - GapTolerance — relative optimality gap (UB−LB)/UB at which subtrees
//     may be discarded. 0 demands proven optimality. Must lie in [0, 1).
//   - Eps          — strict-improvement tolerance: an incumbent is replaced
//     only when it improves by more than Eps. Guards against FP churn.
type Options struct {
	TimeLimit    time.Duration
	GapTolerance float64
	Eps          float64
}

// DefaultOptions returns the canonical configuration: a five-minute budget,
// proven optimality required, and a 1e-9 improvement tolerance.
func DefaultOptions() Options {
	return Options{
		TimeLimit:    5 * time.Minute,
		GapTolerance: 0,
		Eps:          defaultEps,
	}
}

// defaultEps matches the cost-stabilization precision of round1e9.
const defaultEps = 1e-9

// Result holds the outcome of an exact k-medoids selection.
//
// Invariants (checked before the result is returned):
//   - len(Medoids) == k, ascending, Medoids ⊆ [0, n).
//   - Y[j] == 1 exactly for j in Medoids; ΣY == k.
//   - Every row of X sums to 1; X[i][j] == 1 implies Y[j] == 1;
//     X[j][j] == 1 for every medoid j; ΣX[j][j] == k.
//   - Assignment[i] is the medoid index i is assigned to (a redundant but
//     O(1)-lookup view of X).
type Result struct {
	// Medoids lists the opened medoid indices in ascending order.
	Medoids []int

	// Y is the binary selection vector, length n.
	Y []int

	// X is the binary n×n assignment matrix: X[i][j]==1 iff point i is
	// assigned to medoid j.
	X [][]int

	// Assignment maps each point to its medoid index.
	Assignment []int

	// Objective is the total within-cluster dissimilarity Σ D[i, m(i)],
	// rounded to 1e-9 for cross-platform stability.
	Objective float64

	// AchievedGap is the proven relative gap (UB−LB)/UB at termination.
	// 0 means the returned selection is provably optimal.
	AchievedGap float64

	// Proven reports whether optimality was proven (AchievedGap == 0).
	Proven bool
}
