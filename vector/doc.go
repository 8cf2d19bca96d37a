// Package vector provides the point representation used by the clustering
// core: dense and sparse vectors behind a single capability interface, and
// weighted points in homogeneous coordinates.
//
// A weighted point (v, w) stands for the inhomogeneous point v/w. All
// arithmetic on weighted points is written so that v/w is never materialized,
// which preserves sparsity and avoids per-point allocation on hot paths.
package vector
