// Package kmedoids - Branch-and-Bound (exact search with admissible lower bounds).
//
// The engine enumerates medoid index subsets via a depth-first
// Branch-and-Bound search with deterministic branching, an admissible
// suffix-minimum lower bound, and a soft time budget.
//
// Rationale (succinct):
//  1. Strict input shape and invariants are enforced by the entrypoint;
//     here we prefetch the distance matrix into a dense buffer to remove
//     interface overhead in hot loops.
//  2. The incumbent (UB) is seeded by a deterministic greedy build plus a
//     swap polish (see greedy.go). A good UB dramatically strengthens pruning.
//  3. Search: medoids are chosen in strictly ascending index order, so each
//     k-subset is visited exactly once. At a node with chosen prefix P and
//     next candidate c:
//     - bestTo[i] = min distance from point i to P (snapshot per depth),
//     - LB = Σ_i min( bestTo[i], suffixMin[c][i] ).
//     The final medoid set is a subset of P ∪ {c..n−1}, so LB ≤ OPT of the
//     subtree: the bound is admissible. Prune whenever LB ≥ UB − eps, or
//     LB ≥ UB·(1−gap) when a positive gap tolerance is set.
//  4. Soft time limit: rare deadline checks (every 1024 node events) keep
//     overhead negligible. On expiry the bounds of abandoned subtrees are
//     folded into a frontier lower bound, from which the achieved gap is
//     proven.
//
// Complexity:
//   - Worst case exponential in n (exact search). Practical speed comes from pruning.
//   - Per node: O(n) bound + O(n) snapshot update.
//   - Memory: O(n²) for the dense buffer + suffix minima, O(k·n) snapshots.
package kmedoids

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// roundScale controls final cost stabilization precision (1e-9).
// Avoids tiny FP drifts across platforms/opt levels without affecting optimality.
const roundScale = 1e9

// round1e9 returns x rounded to 1e-9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}

// engine holds all search data and policies.
// A dedicated engine struct (instead of anonymous closures) keeps
// dependencies explicit, testing simpler, and hot-path state predictable.
type engine struct {
	// Configuration / policy
	n   int
	k   int
	eps float64
	gap float64

	// Time budget
	useDeadline bool
	deadline    time.Time
	steps       int  // sparse deadline checks counter
	expired     bool // set once the budget elapses; unwinds the search

	// Dissimilarity data (dense buffer): w[i*n+j]
	w []float64

	// suffixMin[c][i] = min_{j ≥ c} w[i*n+j]; suffixMin[n][i] = +Inf.
	suffixMin [][]float64

	// Current search state
	chosen []int       // chosen[0:depth], strictly ascending
	bestTo [][]float64 // (k+1)×n snapshots of nearest-chosen distances

	// Current best incumbent (UB)
	bestSet  []int
	bestCost float64
	foundAny bool

	// frontierLB is the minimum lower bound over subtrees abandoned for a
	// reason other than optimality pruning (gap prune or deadline). +Inf
	// while the search is exhaustive.
	frontierLB float64
}

// at is a fast accessor into the dense dissimilarity buffer.
func (e *engine) at(i, j int) float64 { return e.w[i*e.n+j] }

// deadlineCheck performs a rare deadline test (every 1024 node events).
func (e *engine) deadlineCheck() bool {
	e.steps++
	if !e.useDeadline || (e.steps&1023) != 0 {
		return false
	}

	return time.Now().After(e.deadline)
}

// prefetch loads the symmetric matrix into a dense buffer. Validation has
// already rejected NaN/Inf/negative entries, so this is a plain copy.
func (e *engine) prefetch(d *mat.SymDense) {
	var i, j int
	e.w = make([]float64, e.n*e.n)
	for i = 0; i < e.n; i++ {
		for j = 0; j < e.n; j++ {
			e.w[i*e.n+j] = d.At(i, j)
		}
	}
}

// buildSuffixMin precomputes, for every candidate start c, the per-point
// minimum distance to any index in {c..n−1}. Row n is +Inf so the root
// bound formula needs no special case.
//
// Complexity: O(n²) time and memory.
func (e *engine) buildSuffixMin() {
	var (
		c, i int
		v    float64
	)
	e.suffixMin = make([][]float64, e.n+1)
	e.suffixMin[e.n] = make([]float64, e.n)
	for i = 0; i < e.n; i++ {
		e.suffixMin[e.n][i] = math.Inf(1)
	}
	for c = e.n - 1; c >= 0; c-- {
		row := make([]float64, e.n)
		next := e.suffixMin[c+1]
		for i = 0; i < e.n; i++ {
			v = e.at(i, c)
			if next[i] < v {
				v = next[i]
			}
			row[i] = v
		}
		e.suffixMin[c] = row
	}
}

// recordIncumbent commits a new incumbent (UB) with stabilized cost.
// The set is copied: dfs mutates e.chosen in place.
func (e *engine) recordIncumbent(set []int, cost float64) {
	copy(e.bestSet, set)
	e.bestCost = round1e9(cost)
	e.foundAny = true
}

// noteFrontier folds the bound of an abandoned subtree into the frontier
// lower bound.
func (e *engine) noteFrontier(bound float64) {
	if bound < e.frontierLB {
		e.frontierLB = bound
	}
}

// dfs performs the core search.
//
// depth is the number of medoids already fixed; c is the smallest index
// still eligible as the next medoid. e.bestTo[depth] holds, for every
// point, its distance to the nearest fixed medoid (+Inf at the root).
func (e *engine) dfs(depth, c int) {
	var (
		bestTo = e.bestTo[depth]
		i      int
		v, s   float64
	)

	// Leaf: all k medoids fixed; the snapshot already is the exact cost.
	if depth == e.k {
		var cost float64
		for i = 0; i < e.n; i++ {
			cost += bestTo[i]
		}
		if cost < e.bestCost-e.eps {
			e.recordIncumbent(e.chosen, cost)
		}

		return
	}

	// Admissible lower bound for every completion out of {c..n−1}.
	var bound float64
	for i = 0; i < e.n; i++ {
		v = bestTo[i]
		if s = e.suffixMin[c][i]; s < v {
			v = s
		}
		bound += v
	}

	// Optimality prune. Subtrees cut here can never hold a strictly better
	// incumbent, so they leave no frontier debt.
	if bound >= e.bestCost-e.eps {
		return
	}

	// Gap prune: the caller accepts any solution within the tolerance.
	if e.gap > 0 && bound >= e.bestCost*(1-e.gap) {
		e.noteFrontier(bound)

		return
	}

	// Sparse time check (practically free).
	if e.expired || e.deadlineCheck() {
		e.expired = true
		e.noteFrontier(bound)

		return
	}

	// Branch: candidate medoids in ascending order. Leaving fewer than
	// k−depth−1 indices above m would make the subtree infeasible, hence
	// the inclusive upper limit.
	var (
		m     int
		last  = e.n - (e.k - depth)
		child = e.bestTo[depth+1]
	)
	for m = c; m <= last; m++ {
		for i = 0; i < e.n; i++ {
			v = bestTo[i]
			if s = e.at(i, m); s < v {
				v = s
			}
			child[i] = v
		}
		e.chosen[depth] = m
		e.dfs(depth+1, m+1)
		if e.expired {
			// Unexplored siblings all bound below by this node's bound.
			e.noteFrontier(bound)

			return
		}
	}
}
