// Package breggo provides generalized K-means clustering for Go, where the
// distance is not fixed to squared Euclidean distance but derived from a
// pluggable convex potential (a Bregman divergence).
//
// Features:
//
//   - Closed set of divergences: squared Euclidean, KL on the simplex
//     (natural and count logarithms), generalized KL / I-divergence,
//     logistic loss and Itakura-Saito, with sparse-optimized evaluation
//   - Weighted points in homogeneous coordinates, dense or sparse
//   - Seeding via uniform sampling or multi-round k-means‖ oversampling
//   - Generalized Lloyd iteration with cached center duals
//   - Parallel multi-run driver keeping the lowest-cost model
//   - Compressed, self-describing model snapshots
//
// # Quick Start
//
// Build a trainer with the fluent API and fit it to a dataset:
//
//	points := []vector.Weighted{
//	    vector.Point(vector.Dense{1, 2, 6}),
//	    vector.Point(vector.Dense{1, 3, 0}),
//	    vector.Point(vector.Dense{1, 4, 6}),
//	}
//	ds := dataset.FromSlice(points, 4)
//
//	trainer, err := breggo.KMeans(2).
//	    GeneralizedI().
//	    KMeansParallelInit().
//	    Runs(4).
//	    MaxIterations(20).
//	    Seed(42).
//	    Build()
//	if err != nil {
//	    panic(err)
//	}
//
//	model, err := trainer.Fit(ctx, ds)
//	if err != nil {
//	    panic(err)
//	}
//	cluster, dist := model.Predict(vector.Point(vector.Dense{1, 3, 5}))
//
// Training options can also come from a YAML file via LoadConfig, and models
// can be persisted with SaveModel/LoadModel.
package breggo
