package cluster_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/tsagg/cluster"
)

// periodsToSeries expands per-period levels into a flat signal where every
// period is constant at its level (periodLength samples each).
func periodsToSeries(levels []float64, periodLength int) []float64 {
	out := make([]float64, 0, len(levels)*periodLength)
	for _, v := range levels {
		for t := 0; t < periodLength; t++ {
			out = append(out, v)
		}
	}

	return out
}

// annualPreserved asserts the core guarantee: the weighted sum of a
// signal's representatives reproduces its original annual sum.
func annualPreserved(t *testing.T, res *cluster.Result, s int, signal []float64) {
	t.Helper()

	var reconstructed float64
	for c, reps := range res.Representatives[s] {
		reconstructed += float64(res.ClusterWeights[c]) * floats.Sum(reps)
	}
	assert.InDelta(t, floats.Sum(signal), reconstructed, 1e-9,
		"signal %d annual sum must be preserved", s)
}

// TestCluster_TwoGroupsEndToEnd runs the canonical fixture: two signals
// over 4 periods of length 2 with levels [[0,0,5,5],[0,1,4,6]]. The two
// "low" periods {0,1} and the two "high" periods {2,3} must form the two
// clusters, each with weight 2.
func TestCluster_TwoGroupsEndToEnd(t *testing.T) {
	inputs := [][]float64{
		periodsToSeries([]float64{0, 0, 5, 5}, 2),
		periodsToSeries([]float64{0, 1, 4, 6}, 2),
	}
	opts := cluster.DefaultOptions()
	opts.Weights = []float64{1, 1}

	res, err := cluster.Cluster(inputs, 2, 2, opts)
	require.NoError(t, err)
	require.True(t, res.Proven, "this instance must be proven optimal")

	assert.Equal(t, []int{2, 2}, res.ClusterWeights)
	assert.Equal(t, 1, res.Y[0]+res.Y[1], "one medoid from the low periods")
	assert.Equal(t, 1, res.Y[2]+res.Y[3], "one medoid from the high periods")

	assert.Equal(t, res.Sigma[0], res.Sigma[1], "low periods share a cluster")
	assert.Equal(t, res.Sigma[2], res.Sigma[3], "high periods share a cluster")
	assert.NotEqual(t, res.Sigma[0], res.Sigma[2], "low and high differ")

	annualPreserved(t, res, 0, inputs[0])
	annualPreserved(t, res, 1, inputs[1])
}

// TestCluster_KEqualsN verifies the trivial solution: X is the identity,
// Y all ones, every cluster weight 1, zero objective, and representatives
// exactly equal to the (rescaled-by-1) original periods.
func TestCluster_KEqualsN(t *testing.T) {
	inputs := [][]float64{{1, 2, 3, 4, 5, 6}}

	res, err := cluster.Cluster(inputs, 3, 2, cluster.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 1, 1}, res.ClusterWeights)
	assert.Equal(t, []int{1, 1, 1}, res.Y)
	assert.Equal(t, 0.0, res.Objective)
	assert.True(t, res.Proven)
	for i := 0; i < 3; i++ {
		assert.Equal(t, i, res.Sigma[i])
		assert.Equal(t, 1, res.X[i][i])
	}
	// Every period represents itself, so tiling is lossless and the
	// rescaling factor is exactly 1.
	assert.Equal(t, []float64{1, 2}, res.Representatives[0][0])
	assert.Equal(t, []float64{3, 4}, res.Representatives[0][1])
	assert.Equal(t, []float64{5, 6}, res.Representatives[0][2])

	annualPreserved(t, res, 0, inputs[0])
}

// TestCluster_SingleCluster verifies k == 1: one cluster of weight N whose
// medoid minimizes the total distance, sigma all zeros.
func TestCluster_SingleCluster(t *testing.T) {
	inputs := [][]float64{periodsToSeries([]float64{0, 1, 2, 10}, 3)}

	res, err := cluster.Cluster(inputs, 1, 3, cluster.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []int{4}, res.ClusterWeights)
	assert.Equal(t, []int{0, 0, 0, 0}, res.Sigma)
	assert.Equal(t, 1, res.Y[1], "period 1 is the 1-median of {0,1,2,10}")

	annualPreserved(t, res, 0, inputs[0])
}

// TestCluster_AnnualPreservationRandomized verifies annual preservation on
// a seeded, irregular three-signal year: the guarantee must hold per
// signal independent of how well the clustering matched shape.
func TestCluster_AnnualPreservationRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(61))
	const (
		periods      = 28
		periodLength = 24
	)
	inputs := make([][]float64, 3)
	for s := range inputs {
		sig := make([]float64, periods*periodLength)
		for i := range sig {
			sig[i] = rng.Float64()*50 + float64(s)*10
		}
		inputs[s] = sig
	}
	opts := cluster.DefaultOptions()
	opts.Weights = []float64{3, 1, 2}

	res, err := cluster.Cluster(inputs, 5, periodLength, opts)
	require.NoError(t, err)

	total := 0
	for _, w := range res.ClusterWeights {
		assert.GreaterOrEqual(t, w, 1, "every opened cluster holds its medoid")
		total += w
	}
	assert.Equal(t, periods, total, "cluster weights must sum to N")

	for s := range inputs {
		annualPreserved(t, res, s, inputs[s])
	}
}

// TestCluster_ScaleOptOut verifies the per-signal rescaling opt-out: a
// temperature-like signal keeps its raw medoid values while the demand
// signal is still rescaled.
func TestCluster_ScaleOptOut(t *testing.T) {
	demand := periodsToSeries([]float64{1, 2, 8, 9}, 2)
	temperature := periodsToSeries([]float64{-5, 0, 15, 20}, 2)
	inputs := [][]float64{demand, temperature}

	opts := cluster.DefaultOptions()
	opts.Scale = []bool{true, false}

	res, err := cluster.Cluster(inputs, 2, 2, opts)
	require.NoError(t, err)

	// The unscaled signal keeps raw medoid values: every representative
	// sample must be one of the original temperature levels.
	raw := map[float64]bool{-5: true, 0: true, 15: true, 20: true}
	for _, reps := range res.Representatives[1] {
		for _, v := range reps {
			assert.True(t, raw[v], "unscaled representative %v must be a raw value", v)
		}
	}

	annualPreserved(t, res, 0, inputs[0])
}

// TestCluster_ConstantSignal verifies that a zero-variance signal flows
// through the whole pipeline without NaN and with its annual sum intact.
func TestCluster_ConstantSignal(t *testing.T) {
	inputs := [][]float64{
		periodsToSeries([]float64{0, 1, 8, 9}, 2),
		periodsToSeries([]float64{7, 7, 7, 7}, 2), // degenerate
	}

	res, err := cluster.Cluster(inputs, 2, 2, cluster.DefaultOptions())
	require.NoError(t, err)

	for _, reps := range res.Representatives[1] {
		for _, v := range reps {
			assert.Equal(t, 7.0, v, "constant signal stays constant")
		}
	}
	annualPreserved(t, res, 0, inputs[0])
	annualPreserved(t, res, 1, inputs[1])
}

// TestCluster_SignalOrderInvariant verifies that permuting the signal rows
// leaves the medoid set and objective unchanged.
func TestCluster_SignalOrderInvariant(t *testing.T) {
	a := periodsToSeries([]float64{0, 2, 9, 7, 4, 5}, 4)
	b := periodsToSeries([]float64{3, 1, 6, 8, 2, 2}, 4)

	fwd, err := cluster.Cluster([][]float64{a, b}, 3, 4, cluster.DefaultOptions())
	require.NoError(t, err)
	rev, err := cluster.Cluster([][]float64{b, a}, 3, 4, cluster.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, fwd.Y, rev.Y, "medoid set is order-invariant")
	assert.InDelta(t, fwd.Objective, rev.Objective, 1e-9)
}

// TestCluster_Deterministic verifies that two identical runs with an ample
// budget return identical selections, weights and sigma.
func TestCluster_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	sig := make([]float64, 20*6)
	for i := range sig {
		sig[i] = rng.Float64() * 10
	}
	inputs := [][]float64{sig}

	first, err := cluster.Cluster(inputs, 4, 6, cluster.DefaultOptions())
	require.NoError(t, err)
	second, err := cluster.Cluster(inputs, 4, 6, cluster.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first.Y, second.Y)
	assert.Equal(t, first.X, second.X)
	assert.Equal(t, first.Sigma, second.Sigma)
	assert.Equal(t, first.ClusterWeights, second.ClusterWeights)
}

// TestCluster_SigmaConsistentWithX verifies that sigma is a compacted view
// of X: period i is assigned to the Sigma[i]-th opened medoid.
func TestCluster_SigmaConsistentWithX(t *testing.T) {
	inputs := [][]float64{periodsToSeries([]float64{5, 1, 9, 2, 8, 1}, 2)}

	res, err := cluster.Cluster(inputs, 3, 2, cluster.DefaultOptions())
	require.NoError(t, err)

	var medoids []int
	for j, open := range res.Y {
		if open == 1 {
			medoids = append(medoids, j)
		}
	}
	require.Len(t, medoids, 3)
	for i := range res.Sigma {
		assert.Equal(t, 1, res.X[i][medoids[res.Sigma[i]]],
			"period %d must be assigned to its sigma cluster's medoid", i)
	}
}

// TestCluster_InputContractErrors verifies the fail-fast sentinels: empty
// input, ragged rows, indivisible length, bad k, bad option values,
// mismatched weight and scale vectors.
func TestCluster_InputContractErrors(t *testing.T) {
	valid := [][]float64{{1, 2, 3, 4}}
	opts := cluster.DefaultOptions()

	_, err := cluster.Cluster(nil, 1, 2, opts)
	assert.ErrorIs(t, err, cluster.ErrEmptyInput)

	_, err = cluster.Cluster([][]float64{{}}, 1, 2, opts)
	assert.ErrorIs(t, err, cluster.ErrEmptyInput)

	_, err = cluster.Cluster([][]float64{{1, 2, 3, 4}, {1, 2}}, 1, 2, opts)
	assert.ErrorIs(t, err, cluster.ErrShapeMismatch)

	_, err = cluster.Cluster([][]float64{{1, 2, 3}}, 1, 2, opts)
	assert.ErrorIs(t, err, cluster.ErrShapeMismatch)

	_, err = cluster.Cluster(valid, 0, 2, opts)
	assert.ErrorIs(t, err, cluster.ErrBadClusterCount)

	_, err = cluster.Cluster(valid, 3, 2, opts)
	assert.ErrorIs(t, err, cluster.ErrBadClusterCount)

	bad := cluster.DefaultOptions()
	bad.Norm = 0
	_, err = cluster.Cluster(valid, 1, 2, bad)
	assert.ErrorIs(t, err, cluster.ErrBadOption)

	bad = cluster.DefaultOptions()
	bad.Workers = -1
	_, err = cluster.Cluster(valid, 1, 2, bad)
	assert.ErrorIs(t, err, cluster.ErrBadOption)

	bad = cluster.DefaultOptions()
	bad.TimeLimit = -1
	_, err = cluster.Cluster(valid, 1, 2, bad)
	assert.ErrorIs(t, err, cluster.ErrBadOption)

	bad = cluster.DefaultOptions()
	bad.Weights = []float64{1, 1}
	_, err = cluster.Cluster(valid, 1, 2, bad)
	assert.ErrorIs(t, err, cluster.ErrShapeMismatch)

	bad = cluster.DefaultOptions()
	bad.Scale = []bool{true, false}
	_, err = cluster.Cluster(valid, 1, 2, bad)
	assert.ErrorIs(t, err, cluster.ErrShapeMismatch)

	// A negative weight entry is a caller mistake and must surface as
	// ErrBadOption here, not as a solver-side matrix sentinel after the
	// √weight scaling has flooded the distances with NaN.
	bad = cluster.DefaultOptions()
	bad.Weights = []float64{2, -1}
	_, err = cluster.Cluster([][]float64{{0, 1, 8, 9}, {1, 2, 7, 8}}, 2, 2, bad)
	assert.ErrorIs(t, err, cluster.ErrBadOption)
}

// TestCluster_ReshapedView verifies that the raw reshaped matrices are
// returned alongside the representatives, periods as columns.
func TestCluster_ReshapedView(t *testing.T) {
	inputs := [][]float64{{1, 2, 3, 4, 5, 6}}

	res, err := cluster.Cluster(inputs, 1, 3, cluster.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, res.Reshaped, 1)
	rows, cols := res.Reshaped[0].Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 4.0, res.Reshaped[0].At(0, 1))
}
