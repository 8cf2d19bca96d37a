package divergence

import (
	"math"

	"github.com/hupe1980/breggo/vector"
)

// logisticLoss is F(v) = x·log(x) + (1−x)·log(1−x) on the first coordinate
// x ∈ (0, 1). This is KL divergence under the embedding x -> (x, 1-x); the
// gradient lives in a one-dimensional dual space regardless of the point
// dimensionality.
type logisticLoss struct{}

// NewLogisticLoss returns the logistic-loss potential.
func NewLogisticLoss() Divergence { return logisticLoss{} }

func (logisticLoss) Kind() Kind { return LogisticLoss }

func (logisticLoss) F(v vector.Vector) float64 {
	x := v.At(0)
	return x*math.Log(x) + (1-x)*math.Log(1-x)
}

func (logisticLoss) GradF(v vector.Vector) vector.Dense {
	x := v.At(0)
	return vector.Dense{math.Log(x) - math.Log(1-x)}
}

func (logisticLoss) FWeighted(v vector.Vector, w float64) float64 {
	x := v.At(0) / w
	return x*math.Log(x) + (1-x)*math.Log(1-x)
}

func (logisticLoss) GradFWeighted(v vector.Vector, w float64) vector.Dense {
	x := v.At(0) / w
	return vector.Dense{math.Log(x) - math.Log(1-x)}
}

func (logisticLoss) Validate(p vector.Weighted) error {
	if err := validateWeight(LogisticLoss, p); err != nil {
		return err
	}
	x := p.Vec.At(0) / p.Weight
	if x <= 0 || x >= 1 {
		return &ErrInvalidInput{Kind: LogisticLoss, Index: 0, Value: x}
	}
	return nil
}
