package divergence

import (
	"math"

	"github.com/hupe1980/breggo/vector"
)

// itakuraSaito is the Burg-entropy potential F(v) = −Σ log(v_i), whose
// Bregman divergence is the Itakura-Saito distance used for spectra.
// Zero components put the point on the domain boundary: F evaluates to +Inf
// and the pair is skipped downstream rather than rejected.
type itakuraSaito struct{}

// NewItakuraSaito returns the Itakura-Saito potential.
func NewItakuraSaito() Divergence { return itakuraSaito{} }

func (itakuraSaito) Kind() Kind { return ItakuraSaito }

func (itakuraSaito) F(v vector.Vector) float64 {
	sum, nz := sumLog(v)
	if nz < v.Dim() {
		return math.Inf(1)
	}
	return -sum
}

func (itakuraSaito) GradF(v vector.Vector) vector.Dense {
	g := make(vector.Dense, v.Dim())
	for i := range g {
		g[i] = -1 / v.At(i)
	}
	return g
}

// FWeighted evaluates F(v/w) = dim·log(w) − Σ log(v_i) without rescaling v.
func (itakuraSaito) FWeighted(v vector.Vector, w float64) float64 {
	sum, nz := sumLog(v)
	if nz < v.Dim() {
		return math.Inf(1)
	}
	return float64(v.Dim())*math.Log(w) - sum
}

// GradFWeighted scales the per-component gradient by −w: grad_i = −w/v_i.
func (itakuraSaito) GradFWeighted(v vector.Vector, w float64) vector.Dense {
	g := make(vector.Dense, v.Dim())
	for i := range g {
		g[i] = -w / v.At(i)
	}
	return g
}

func (itakuraSaito) Validate(p vector.Weighted) error {
	return validateNonNegative(ItakuraSaito, p)
}

func sumLog(v vector.Vector) (sum float64, nz int) {
	v.NonZero(func(_ int, x float64) bool {
		sum += math.Log(x)
		nz++
		return true
	})
	return sum, nz
}
