package divergence

import "github.com/hupe1980/breggo/vector"

// squaredEuclidean is F(v) = v·v, whose Bregman divergence is the squared
// Euclidean distance.
type squaredEuclidean struct{}

// NewSquaredEuclidean returns the squared-Euclidean potential.
func NewSquaredEuclidean() Divergence { return squaredEuclidean{} }

func (squaredEuclidean) Kind() Kind { return SquaredEuclidean }

func (squaredEuclidean) F(v vector.Vector) float64 {
	return vector.Dot(v, v)
}

func (squaredEuclidean) GradF(v vector.Vector) vector.Dense {
	g := vector.DenseCopy(v)
	for i := range g {
		g[i] *= 2
	}
	return g
}

func (squaredEuclidean) FWeighted(v vector.Vector, w float64) float64 {
	return vector.Dot(v, v) / (w * w)
}

func (squaredEuclidean) GradFWeighted(v vector.Vector, w float64) vector.Dense {
	g := vector.DenseCopy(v)
	s := 2 / w
	for i := range g {
		g[i] *= s
	}
	return g
}

func (squaredEuclidean) Validate(p vector.Weighted) error {
	return validateWeight(SquaredEuclidean, p)
}
