package cluster_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/tsagg/cluster"
)

// mustReshape is a fixture helper; it fails the test on a shape error.
func mustReshape(t *testing.T, vals []float64, periodLength int) *mat.Dense {
	t.Helper()
	m, err := cluster.Reshape(vals, periodLength)
	require.NoError(t, err)

	return m
}

// TestDistances_HandComputed verifies the Euclidean aggregate against a
// hand-computed two-signal fixture.
func TestDistances_HandComputed(t *testing.T) {
	// Signal A periods: [0,0], [3,4]; signal B periods: [1,1], [1,1].
	a := mustReshape(t, []float64{0, 0, 3, 4}, 2)
	b := mustReshape(t, []float64{1, 1, 1, 1}, 2)

	d, err := cluster.Distances([]*mat.Dense{a, b}, 2, 1)
	require.NoError(t, err)

	require.Equal(t, 2, d.SymmetricDim())
	assert.Equal(t, 0.0, d.At(0, 0), "zero diagonal")
	assert.Equal(t, 0.0, d.At(1, 1), "zero diagonal")
	// √(3² + 4² + 0 + 0) = 5: signal B is constant and contributes nothing.
	assert.InDelta(t, 5.0, d.At(0, 1), 1e-12)
	assert.InDelta(t, 5.0, d.At(1, 0), 1e-12, "mirror entry")
}

// TestDistances_ManhattanNorm verifies the r = 1 path: plain sums of
// absolute differences, no root curvature.
func TestDistances_ManhattanNorm(t *testing.T) {
	a := mustReshape(t, []float64{0, 0, 3, 4}, 2)

	d, err := cluster.Distances([]*mat.Dense{a}, 1, 1)
	require.NoError(t, err)

	assert.InDelta(t, 7.0, d.At(0, 1), 1e-12, "|3|+|4| under L1")
}

// TestDistances_ParallelMatchesSerial verifies that the worker count does
// not change a single cell (cells are write-once and disjoint).
func TestDistances_ParallelMatchesSerial(t *testing.T) {
	// 8 periods of 6 samples with a deterministic non-trivial pattern.
	vals := make([]float64, 48)
	for i := range vals {
		vals[i] = math.Sin(float64(i)) * float64(i%7)
	}
	p := mustReshape(t, vals, 6)

	serial, err := cluster.Distances([]*mat.Dense{p}, 2, 1)
	require.NoError(t, err)
	parallel, err := cluster.Distances([]*mat.Dense{p}, 2, 4)
	require.NoError(t, err)

	n := serial.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.Equal(t, serial.At(i, j), parallel.At(i, j), "cell (%d,%d)", i, j)
		}
	}
}

// TestDistances_SignalOrderInvariant verifies that permuting the signal
// list leaves the matrix unchanged (the aggregate is a sum over signals).
func TestDistances_SignalOrderInvariant(t *testing.T) {
	a := mustReshape(t, []float64{0, 1, 2, 3, 4, 5}, 2)
	b := mustReshape(t, []float64{5, 3, 1, 8, 2, 6}, 2)

	ab, err := cluster.Distances([]*mat.Dense{a, b}, 2, 1)
	require.NoError(t, err)
	ba, err := cluster.Distances([]*mat.Dense{b, a}, 2, 1)
	require.NoError(t, err)

	n := ab.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.InDelta(t, ab.At(i, j), ba.At(i, j), 1e-12)
		}
	}
}

// TestDistances_ShapeAndOptionErrors verifies the validation sentinels:
// no signals, mismatched column counts, bad norm, negative workers.
func TestDistances_ShapeAndOptionErrors(t *testing.T) {
	a := mustReshape(t, []float64{0, 1, 2, 3}, 2)
	short := mustReshape(t, []float64{0, 1}, 2)

	_, err := cluster.Distances(nil, 2, 0)
	assert.ErrorIs(t, err, cluster.ErrEmptyInput)

	_, err = cluster.Distances([]*mat.Dense{a, short}, 2, 0)
	assert.ErrorIs(t, err, cluster.ErrShapeMismatch)

	_, err = cluster.Distances([]*mat.Dense{a}, 0, 0)
	assert.ErrorIs(t, err, cluster.ErrBadOption)

	_, err = cluster.Distances([]*mat.Dense{a}, 2, -1)
	assert.ErrorIs(t, err, cluster.ErrBadOption)
}
