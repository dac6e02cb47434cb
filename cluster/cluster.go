// Package cluster - pipeline front door.
//
// Cluster is the single entrypoint tying the stages together. It performs
// all input-contract checks up front (fail fast, no partial results), then
// runs a pure batch computation with no shared state between calls.
package cluster

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/tsagg/kmedoids"
)

// Cluster reduces the given signals into numberClusters representative
// periods of periodLength samples each.
//
// Contracts:
//   - inputs: rows are signals, columns are samples; at least one signal,
//     all signals equally long, length an exact multiple of periodLength.
//   - 1 ≤ numberClusters ≤ N where N = samples/periodLength.
//   - opts per types.go; DefaultOptions() reproduces the canonical setup
//     (Euclidean distance, five-minute budget, proven optimality).
//
// The returned Result satisfies, for every signal s not opted out via
// opts.Scale:
//
//	Σ_c ClusterWeights[c] · Σ_t Representatives[s][c][t] == Σ inputs[s]
//
// within floating-point tolerance, regardless of clustering quality.
//
// Errors: strict sentinels from types.go for caller mistakes;
// kmedoids.ErrInternal only on an engine bug. An elapsed time budget is
// not an error (see Result.Proven, Result.AchievedGap).
func Cluster(inputs [][]float64, numberClusters, periodLength int, opts Options) (*Result, error) {
	// Stage 1 - input-contract validation, before any computation.
	signals := len(inputs)
	if signals == 0 {
		return nil, ErrEmptyInput
	}
	samples := len(inputs[0])
	if samples == 0 {
		return nil, ErrEmptyInput
	}
	for s := 1; s < signals; s++ {
		if len(inputs[s]) != samples {
			return nil, ErrShapeMismatch
		}
	}
	if periodLength < 1 || samples%periodLength != 0 {
		return nil, ErrShapeMismatch
	}
	n := samples / periodLength
	if numberClusters < 1 || numberClusters > n {
		return nil, ErrBadClusterCount
	}
	if opts.Norm < 1 || opts.Workers < 0 || opts.TimeLimit < 0 ||
		opts.GapTolerance < 0 || opts.GapTolerance >= 1 {
		return nil, ErrBadOption
	}
	if opts.Scale != nil && len(opts.Scale) != signals {
		return nil, ErrShapeMismatch
	}
	weights, err := normalizeWeights(opts.Weights, signals)
	if err != nil {
		return nil, err
	}

	// Stage 2 - normalize and reshape each signal (raw and scaled views).
	var (
		reshaped = make([]*mat.Dense, signals)
		scaled   = make([]*mat.Dense, signals)
	)
	for s := 0; s < signals; s++ {
		if reshaped[s], err = Reshape(inputs[s], periodLength); err != nil {
			return nil, err
		}
		if scaled[s], err = Reshape(scaleSignal(inputs[s], weights[s]), periodLength); err != nil {
			return nil, err
		}
	}

	// Stage 3 - symmetric distance matrix across all signals.
	d, err := Distances(scaled, opts.Norm, opts.Workers)
	if err != nil {
		return nil, err
	}

	// Stage 4 - exact k-medoids selection.
	kopts := kmedoids.DefaultOptions()
	kopts.TimeLimit = opts.TimeLimit
	kopts.GapTolerance = opts.GapTolerance
	sel, err := kmedoids.Solve(d, numberClusters, kopts)
	if err != nil {
		return nil, err
	}

	// Stage 5 - cluster weights and the calendar→cluster sigma lookup.
	// Opened clusters are compacted in ascending medoid-index order.
	var (
		compact        = make([]int, n)
		clusterWeights = make([]int, numberClusters)
		sigma          = make([]int, n)
	)
	for c, m := range sel.Medoids {
		compact[m] = c
	}
	for i := 0; i < n; i++ {
		c := compact[sel.Assignment[i]]
		sigma[i] = c
		clusterWeights[c]++
	}

	// Stage 6 - representative periods in original units, then the
	// annual-preserving rescaling: one factor per signal, computed against
	// the reconstruction that tiles each representative ClusterWeights[c]
	// times (a magnitude proxy; date accuracy is sigma's job).
	representatives := make([][][]float64, signals)
	for s := 0; s < signals; s++ {
		reps := make([][]float64, numberClusters)
		for c, m := range sel.Medoids {
			col := make([]float64, periodLength)
			mat.Col(col, m, reshaped[s])
			reps[c] = col
		}
		if opts.Scale == nil || opts.Scale[s] {
			rescaleSignal(reps, clusterWeights, floats.Sum(inputs[s]))
		}
		representatives[s] = reps
	}

	return &Result{
		Representatives: representatives,
		ClusterWeights:  clusterWeights,
		Y:               sel.Y,
		X:               sel.X,
		Reshaped:        reshaped,
		Sigma:           sigma,
		Objective:       sel.Objective,
		AchievedGap:     sel.AchievedGap,
		Proven:          sel.Proven,
	}, nil
}

// rescaleSignal multiplies every representative period by the single
// factor annual / Σ_c weight_c·Σ_t reps[c][t]. A zero reconstruction sum
// (an all-zero signal) leaves the representatives untouched: there is no
// magnitude to restore.
//
// Complexity: O(k·periodLength).
func rescaleSignal(reps [][]float64, clusterWeights []int, annual float64) {
	var reconstructed float64
	for c := range reps {
		reconstructed += float64(clusterWeights[c]) * floats.Sum(reps[c])
	}
	if reconstructed == 0 {
		return
	}

	factor := annual / reconstructed
	for c := range reps {
		floats.Scale(factor, reps[c])
	}
}
