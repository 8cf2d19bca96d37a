package vector

// Weighted is a point in homogeneous coordinates: the pair (Vec, Weight)
// stands for the inhomogeneous point Vec/Weight. Unweighted points carry
// weight 1. Weight must be non-negative.
type Weighted struct {
	Vec    Vector
	Weight float64
}

// NewWeighted wraps v with the given weight.
func NewWeighted(v Vector, weight float64) Weighted {
	return Weighted{Vec: v, Weight: weight}
}

// Point wraps v as an unweighted point (weight 1).
func Point(v Vector) Weighted {
	return Weighted{Vec: v, Weight: 1}
}

// Dim returns the dimensionality of the underlying vector.
func (p Weighted) Dim() int { return p.Vec.Dim() }

// Inhomogeneous materializes Vec/Weight as a dense vector. Intended for
// tests, model export and debugging; hot paths stay in homogeneous form.
func (p Weighted) Inhomogeneous() Dense {
	out := DenseCopy(p.Vec)
	if p.Weight != 1 && p.Weight != 0 {
		inv := 1 / p.Weight
		for i := range out {
			out[i] *= inv
		}
	}
	return out
}

// Equal reports whether p and q represent the same inhomogeneous point with
// identical weights.
func (p Weighted) Equal(q Weighted) bool {
	return p.Weight == q.Weight && Equal(p.Vec, q.Vec)
}

// SamePoint reports whether p and q stand for the same inhomogeneous point,
// irrespective of their weights. Cross-multiplied comparison avoids division.
func (p Weighted) SamePoint(q Weighted) bool {
	if p.Vec.Dim() != q.Vec.Dim() {
		return false
	}
	for i := 0; i < p.Vec.Dim(); i++ {
		if p.Vec.At(i)*q.Weight != q.Vec.At(i)*p.Weight {
			return false
		}
	}
	return true
}
