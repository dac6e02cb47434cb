// Package cluster - period-to-period distance matrix.
//
// The build is embarrassingly parallel: every (i, j) pair is independent
// and every cell is written exactly once, so rows are fanned out across an
// errgroup with no further synchronization.
package cluster

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Distances computes the symmetric N×N matrix of Lp distances between
// periods, aggregated additively across all signals:
//
//	D[i,j] = ( Σ_s Σ_t |P_s[t,i] − P_s[t,j]|^r )^(1/r)
//
// with zero diagonal. periods holds one periodLength_s×N matrix per
// signal; the matrices may differ in row count but must agree on N.
//
// Contracts:
//   - at least one matrix, none nil, all with the same column count;
//   - norm r ≥ 1; workers ≥ 0 (0 = one per available CPU).
//
// Complexity: O(N²·T) where T = Σ_s periodLength_s — the dominant cost of
// the whole pipeline; intended for modest N (tens to a few hundred).
func Distances(periods []*mat.Dense, norm, workers int) (*mat.SymDense, error) {
	// Stage 1: validation.
	if len(periods) == 0 {
		return nil, ErrEmptyInput
	}
	if norm < 1 {
		return nil, ErrBadOption
	}
	if workers < 0 {
		return nil, ErrBadOption
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var n int
	for s, p := range periods {
		if p == nil {
			return nil, ErrEmptyInput
		}
		_, cols := p.Dims()
		if s == 0 {
			n = cols
		} else if cols != n {
			return nil, ErrShapeMismatch
		}
	}

	// Stage 2: parallel upper-triangle fill into a flat buffer. Cell (i,j)
	// and its mirror (j,i) are written by exactly one goroutine, so the
	// buffer needs no locking.
	var (
		data = make([]float64, n*n)
		g    errgroup.Group
		r    = float64(norm)
	)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			for j := i + 1; j < n; j++ {
				d := periodDistance(periods, i, j, r)
				data[i*n+j] = d
				data[j*n+i] = d
			}

			return nil
		})
	}
	// Workers return no errors; Wait only joins them.
	_ = g.Wait()

	return mat.NewSymDense(n, data), nil
}

// periodDistance accumulates |a−b|^r over every signal's column pair and
// takes the 1/r root. The r == 2 fast path avoids math.Pow in the hot loop.
//
// Complexity: O(T).
func periodDistance(periods []*mat.Dense, i, j int, r float64) float64 {
	var (
		sum  float64
		v    float64
		rows int
		t    int
	)
	for _, p := range periods {
		rows, _ = p.Dims()
		if r == 2 {
			for t = 0; t < rows; t++ {
				v = p.At(t, i) - p.At(t, j)
				sum += v * v
			}
		} else {
			for t = 0; t < rows; t++ {
				v = math.Abs(p.At(t, i) - p.At(t, j))
				sum += math.Pow(v, r)
			}
		}
	}
	if r == 2 {
		return math.Sqrt(sum)
	}

	return math.Pow(sum, 1/r)
}
