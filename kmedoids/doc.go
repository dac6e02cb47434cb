// Package kmedoids solves the exact k-medoids (p-median) selection problem
// over a precomputed symmetric dissimilarity matrix.
//
// Problem statement (Vinod, "Integer Programming and the Theory of
// Grouping", JASA 64(326), 1969; applied to typical-demand-day selection by
// Domínguez-Muñoz et al., Energy and Buildings 43(11), 2011):
//
//	minimize   Σ_i Σ_j D[i,j] · X[i,j]
//	subject to Σ_j X[i,j] = 1      for all i     (every point assigned once)
//	           Σ_j Y[j]   = k                    (exactly k medoids)
//	           X[i,j] ≤ Y[j]       for all i,j   (no assignment to closed medoid)
//	           X[j,j] ≥ Y[j]       for all j     (open medoid self-assigned)
//	           Σ_j X[j,j] = k
//	           X, Y binary
//
// The formulation is feasible for every 1 ≤ k ≤ n (k = n is the identity
// selection with objective 0), so a reported infeasibility is always an
// engine bug and surfaces as ErrInternal.
//
// Algorithm outline:
//  1. For a fixed medoid set S the optimal assignment is "each point to its
//     nearest member of S" (smallest-index tie-break), so the search runs
//     over k-subsets of [0, n), not over full (Y, X) pairs.
//  2. A deterministic greedy build plus first-improvement swap polish seeds
//     the incumbent (upper bound) before the exact search starts.
//  3. Depth-first branch-and-bound enumerates medoid indices in ascending
//     order. At a node with chosen prefix P and next candidate c the bound
//
//	LB = Σ_i min( d(i, P), min_{j ≥ c} D[i,j] )
//
//     is admissible: the final medoid set is a subset of P ∪ {c, …, n−1}.
//     Subtrees with LB ≥ UB − Eps are pruned; with a positive GapTolerance g,
//     subtrees with LB ≥ UB·(1−g) are discarded as well.
//  4. A soft wall-clock deadline is checked sparsely (every 1024 node
//     events). On expiry the incumbent is returned as a successful result
//     together with the proven gap to the abandoned frontier.
//
// Complexity:
//   - Worst case exponential in n (exact search); pruning makes instances
//     in the intended range (tens to a few hundred points, e.g. 365 days or
//     52 weeks) practical.
//   - Per node: O(n) bound + O(n) state updates.
//   - Memory: O(n²) for the dense buffer and suffix minima, O(k·n) for the
//     per-depth distance snapshots.
//
// Determinism: branching order, tie-breaks and the greedy seed are all
// index-ordered; two runs with identical inputs and a budget sufficient to
// prove optimality return identical results.
package kmedoids
