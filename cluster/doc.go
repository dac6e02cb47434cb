// Package cluster turns full-year, multi-signal time series into a small
// set of annual-energy-preserving representative periods.
//
// Pipeline (one synchronous, stateless batch computation per call):
//
//	raw signals
//	  → min-max scaling × √weight     (normalize.go)
//	  → column-major period reshaping (reshape.go)
//	  → symmetric Lp distance matrix  (distance.go, parallel)
//	  → exact k-medoids selection     (kmedoids.Solve)
//	  → cluster weights + sigma map
//	  → annual-preserving rescaling   (cluster.go)
//
// Normalization equalizes dynamic ranges across heterogeneous signals
// (kW demand vs. °C vs. irradiance); the √weight multiplier makes each
// signal's contribution to the squared-error distance proportional to its
// linear weight (exact for Norm == 2 only, see Options.Norm).
//
// The representative periods are medoids: actual periods from the input,
// never synthetic averages. After selection, each signal's representatives
// are rescaled by a single per-signal factor so that
//
//	Σ_c ClusterWeights[c] · Σ_t Representatives[s][c][t] == Σ original_s
//
// holds exactly (within FP tolerance) regardless of clustering quality.
//
// Error policy: input-contract violations fail fast with strict sentinels
// and no partial results; zero-variance signals are normalized to a
// constant locally (never surfaced); an elapsed selector budget is a
// successful result carrying its achieved optimality gap.
//
// Complexity: the distance matrix dominates at O(N²·T) for N periods and T
// total per-period samples across signals; the build is parallel over
// periods. The method targets modest N (365 days, 52 weeks), not thousands.
package cluster
