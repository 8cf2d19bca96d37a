// Package kmeans implements generalized K-means clustering under a pluggable
// Bregman divergence: seeding (uniform random and multi-pass k-means‖
// oversampling), generalized Lloyd iteration, and a multi-run driver that
// keeps the lowest-cost model.
//
// The algorithm runs against a dataset.Dataset through its data-parallel
// primitives only, so every pass over the points is a map or an aggregate:
// one aggregate per Lloyd iteration, one aggregate per seeding round.
// Centers are replaced wholesale between iterations; each iteration reads an
// immutable snapshot and produces the next, so no locking is involved.
package kmeans
