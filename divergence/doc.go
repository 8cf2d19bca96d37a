// Package divergence defines the convex potential functions that generalized
// K-means is built on. A divergence exposes a convex function F together with
// its gradient, plus homogeneous-coordinate overloads that evaluate F and
// gradF at v/w directly on the weighted representation (v, w), so sparse
// points are never rescaled component by component.
//
// The set of divergences is closed and selected by Kind, in the same way a
// distance metric is selected elsewhere in the ecosystem. Sparse-optimized
// evaluation is an internal fast path behind the same interface: every
// implementation iterates non-zero components where the math allows it.
package divergence
