package divergence

import "github.com/hupe1980/breggo/vector"

// klSimplex is the negative Shannon entropy F(v) = Σ v_i·log(v_i), whose
// Bregman divergence is Kullback-Leibler divergence. Callers guarantee the
// components are non-negative and that Σ v_i is meaningful as a normalizer.
type klSimplex struct {
	log  LogFunc
	kind Kind
}

// NewKLSimplex returns the KL-on-simplex potential parameterized by the given
// logarithm.
func NewKLSimplex(log LogFunc, kind Kind) Divergence {
	return klSimplex{log: log, kind: kind}
}

func (d klSimplex) Kind() Kind { return d.kind }

func (d klSimplex) F(v vector.Vector) float64 {
	var sum float64
	v.NonZero(func(_ int, x float64) bool {
		sum += x * d.log(x)
		return true
	})
	return sum
}

func (d klSimplex) GradF(v vector.Vector) vector.Dense {
	g := make(vector.Dense, v.Dim())
	for i := range g {
		g[i] = 1 + d.log(v.At(i))
	}
	return g
}

// FWeighted evaluates F(v/w) = (Σ v_i·log(v_i) − log(w)·Σ v_i) / w without
// rescaling v.
func (d klSimplex) FWeighted(v vector.Vector, w float64) float64 {
	var sumVLogV, sumV float64
	v.NonZero(func(_ int, x float64) bool {
		sumVLogV += x * d.log(x)
		sumV += x
		return true
	})
	return (sumVLogV - d.log(w)*sumV) / w
}

func (d klSimplex) GradFWeighted(v vector.Vector, w float64) vector.Dense {
	g := make(vector.Dense, v.Dim())
	logW := d.log(w)
	for i := range g {
		g[i] = 1 + d.log(v.At(i)) - logW
	}
	return g
}

func (d klSimplex) Validate(p vector.Weighted) error {
	return validateNonNegative(d.kind, p)
}

// generalizedI is F(v) = Σ v_i·(log(v_i) − 1), defined on the full
// non-negative orthant with no simplex assumption. Its Bregman divergence is
// the generalized KL (I-) divergence.
type generalizedI struct {
	log  LogFunc
	kind Kind
}

// NewGeneralizedI returns the generalized-I potential parameterized by the
// given logarithm.
func NewGeneralizedI(log LogFunc, kind Kind) Divergence {
	return generalizedI{log: log, kind: kind}
}

func (d generalizedI) Kind() Kind { return d.kind }

func (d generalizedI) F(v vector.Vector) float64 {
	var sum float64
	v.NonZero(func(_ int, x float64) bool {
		sum += x * (d.log(x) - 1)
		return true
	})
	return sum
}

func (d generalizedI) GradF(v vector.Vector) vector.Dense {
	g := make(vector.Dense, v.Dim())
	for i := range g {
		g[i] = d.log(v.At(i))
	}
	return g
}

// FWeighted evaluates F(v/w) = Σ (v_i/w)·(log(v_i) − log(w) − 1) without
// rescaling v.
func (d generalizedI) FWeighted(v vector.Vector, w float64) float64 {
	var sum float64
	logW := d.log(w)
	v.NonZero(func(_ int, x float64) bool {
		sum += x * (d.log(x) - logW - 1)
		return true
	})
	return sum / w
}

func (d generalizedI) GradFWeighted(v vector.Vector, w float64) vector.Dense {
	g := make(vector.Dense, v.Dim())
	logW := d.log(w)
	for i := range g {
		g[i] = d.log(v.At(i)) - logW
	}
	return g
}

func (d generalizedI) Validate(p vector.Weighted) error {
	return validateNonNegative(d.kind, p)
}
