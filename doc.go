// Package tsagg reduces full-year, multi-signal time series into a small
// set of representative periods ("design days" or "design weeks") while
// preserving each signal's annual total — the standard preprocessing step
// for dispatch/operations optimizers that cannot afford 8760 hourly steps.
//
// 🚀 What is tsagg?
//
//	A pure-Go aggregation engine that brings together:
//		• Min-max normalization with per-signal importance weights
//		• Column-major reshaping of signals into fixed-length periods
//		• Symmetric Lp distance matrices across all signals (parallel build)
//		• Exact k-medoids selection via deterministic branch-and-bound
//		• Cluster weights, calendar→cluster sigma lookup
//		• Annual-energy-preserving rescaling of representative periods
//
// ✨ Why choose tsagg?
//
//   - Exact where it matters – the medoid selection is solved to proven
//     optimality (or to a caller-supplied gap/time budget, with the achieved
//     gap reported)
//   - Deterministic – identical inputs and a sufficient budget always yield
//     identical selections and assignments
//   - Honest accounting – the weighted sum of every signal's representative
//     periods equals its original annual sum, independent of clustering quality
//
// Everything is organized under two subpackages:
//
//	cluster/  — the pipeline front door: Cluster(inputs, k, periodLength, opts)
//	kmedoids/ — the exact selector: Solve(distances, k, opts)
//
// Quick sketch:
//
//	365 days × {heat, power, weather, solar}
//	       │ normalize · reshape · distances
//	       ▼
//	  N×N dissimilarity ──► k medoid days + weights + sigma
//	       │
//	       ▼
//	  rescaled design days, annual sums preserved per signal
//
// Dive into cluster/doc.go and kmedoids/doc.go for contracts, complexity
// notes and worked examples.
package tsagg
