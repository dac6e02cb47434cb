// Package kmedoids - deterministic incumbent seeding.
//
// The exact search prunes against the incumbent cost, so a tight feasible
// solution before the first DFS node pays for itself many times over. The
// seed is a classical two-phase heuristic:
//
//  1. Greedy build: start from the single best medoid (the 1-median) and
//     repeatedly add the index that lowers the assignment cost the most.
//  2. Swap polish: first-improvement sweeps exchanging one chosen medoid
//     for one outsider, until no exchange improves or the sweep budget is
//     exhausted (PAM-style local search).
//
// Both phases break ties by the smallest index, keeping runs reproducible.
// Correctness of Solve does not depend on this file: the DFS would find the
// optimum from a +Inf incumbent, just slower.
package kmedoids

import (
	"math"
	"sort"
)

// maxSwapSweeps bounds the polish phase; each sweep is O(k·(n−k)·n).
const maxSwapSweeps = 16

// assignCost returns Σ_i min_{m ∈ set} d(i, m).
//
// Complexity: O(n·|set|).
func (e *engine) assignCost(set []int) float64 {
	var (
		i, mi int
		total float64
		best  float64
		v     float64
	)
	for i = 0; i < e.n; i++ {
		best = math.Inf(1)
		for mi = 0; mi < len(set); mi++ {
			if v = e.at(i, set[mi]); v < best {
				best = v
			}
		}
		total += best
	}

	return total
}

// seedIncumbent runs greedy build + swap polish and records the result as
// the starting upper bound. Always produces a feasible k-subset.
func (e *engine) seedIncumbent() {
	var (
		set    = make([]int, 0, e.k)
		inSet  = make([]bool, e.n)
		nearby = make([]float64, e.n) // distance to nearest chosen medoid
		i, m   int
	)
	for i = 0; i < e.n; i++ {
		nearby[i] = math.Inf(1)
	}

	// Phase 1: greedy build. Each step evaluates every outsider in index
	// order; strict < keeps the smallest index on ties.
	var (
		total     float64
		bestM     int
		bestTotal float64
		v         float64
	)
	for len(set) < e.k {
		bestM, bestTotal = -1, math.Inf(1)
		for m = 0; m < e.n; m++ {
			if inSet[m] {
				continue
			}
			total = 0
			for i = 0; i < e.n; i++ {
				v = nearby[i]
				if w := e.at(i, m); w < v {
					v = w
				}
				total += v
			}
			if total < bestTotal {
				bestM, bestTotal = m, total
			}
		}
		set = append(set, bestM)
		inSet[bestM] = true
		for i = 0; i < e.n; i++ {
			if w := e.at(i, bestM); w < nearby[i] {
				nearby[i] = w
			}
		}
	}

	// Phase 2: swap polish (first improvement, bounded sweeps).
	var (
		cost     = e.assignCost(set)
		improved = true
		sweep    int
		si       int
		old      int
		trial    float64
	)
	for improved && sweep < maxSwapSweeps {
		improved = false
		sweep++
		for si = 0; si < e.k; si++ {
			old = set[si]
			for m = 0; m < e.n; m++ {
				if inSet[m] {
					continue
				}
				set[si] = m
				if trial = e.assignCost(set); trial < cost-e.eps {
					// Accept the exchange and keep sweeping.
					inSet[old] = false
					inSet[m] = true
					cost = trial
					old = m
					improved = true
				} else {
					set[si] = old
				}
			}
		}
	}

	// The DFS emits ascending subsets; store the seed the same way.
	sort.Ints(set)
	e.recordIncumbent(set, cost)
}
