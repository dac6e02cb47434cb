package cluster

import (
	"errors"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Strict sentinel errors. Input-contract violations fail fast before any
// computation starts; no partial results are ever returned alongside them.
var (
	// ErrEmptyInput indicates zero signals or a zero-length signal.
	ErrEmptyInput = errors.New("cluster: empty input")

	// ErrShapeMismatch indicates inconsistent signal lengths, a sample
	// count not divisible by the period length, or a weight/scale vector
	// whose length differs from the signal count.
	ErrShapeMismatch = errors.New("cluster: input shape mismatch")

	// ErrBadClusterCount indicates a cluster count outside [1, N] where N
	// is the number of periods.
	ErrBadClusterCount = errors.New("cluster: cluster count outside [1, number of periods]")

	// ErrBadOption indicates a nonsensical option value (norm < 1,
	// negative worker count, negative time limit or gap).
	ErrBadOption = errors.New("cluster: invalid option value")
)

// DefaultNorm is the exponent of the period-to-period distance. With r = 2
// the √weight pre-scaling makes each signal's contribution to the squared
// distance proportional to its linear weight; for any other r that
// equivalence does not hold and the weighting is experimental.
const DefaultNorm = 2

// DefaultTimeLimit bounds the representative-selection search per call.
const DefaultTimeLimit = 5 * time.Minute

// Options configures a single Cluster call. The zero value is not usable;
// start from DefaultOptions and adjust.
//
// Fields:
//   - Norm         — Lp exponent r of the period distance (≥ 1; see DefaultNorm).
//   - TimeLimit    — wall-clock budget for the exact selector. 0 = unlimited.
//     An elapsed budget still returns the best selection found (observable
//     via Result.Proven and Result.AchievedGap).
//   - GapTolerance — relative optimality gap accepted by the selector
//     (0 = prove optimality). Must lie in [0, 1).
//   - Weights      — one importance weight per signal. nil means uniform.
//     Renormalized to sum to 1 when needed; that is not an error.
//   - Scale        — per-signal opt-out of annual-preserving rescaling.
//     nil means every signal is rescaled. Temperature-like signals, whose
//     annual sum is physically meaningless, should carry false here.
//   - Workers      — parallelism of the distance-matrix build. 0 = one
//     worker per available CPU.
type Options struct {
	Norm         int
	TimeLimit    time.Duration
	GapTolerance float64
	Weights      []float64
	Scale        []bool
	Workers      int
}

// DefaultOptions returns the canonical configuration: Euclidean distance,
// five-minute selector budget, proven optimality, uniform weights, every
// signal rescaled, automatic parallelism.
func DefaultOptions() Options {
	return Options{
		Norm:      DefaultNorm,
		TimeLimit: DefaultTimeLimit,
	}
}

// Result is the complete aggregation outcome. All slices are freshly
// allocated per call; the caller owns them outright.
type Result struct {
	// Representatives holds, per signal, k period-length vectors in the
	// signal's original units, rescaled so that the weighted sum over all
	// clusters reproduces the signal's annual total (unless opted out via
	// Options.Scale). Indexing: [signal][cluster][t].
	Representatives [][][]float64

	// ClusterWeights[c] counts the calendar periods assigned to cluster c;
	// the weights sum to the total number of periods N.
	ClusterWeights []int

	// Y is the binary medoid-selection vector, length N.
	Y []int

	// X is the binary N×N assignment matrix (row sums 1, X ≤ Y).
	X [][]int

	// Reshaped holds the raw per-signal periodLength×N matrices, periods
	// as columns — the unclustered view downstream callers often need
	// alongside the representatives.
	Reshaped []*mat.Dense

	// Sigma maps each calendar period index to the compacted index
	// (0..k-1) of its assigned open cluster. Opened clusters are numbered
	// in ascending medoid-index order, not by weight.
	Sigma []int

	// Objective is the total within-cluster dissimilarity of the selection.
	Objective float64

	// AchievedGap is the selector's proven relative optimality gap;
	// 0 means the selection is provably optimal.
	AchievedGap float64

	// Proven reports whether the selection was proven optimal within the
	// time budget.
	Proven bool
}
