package bregman

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/breggo/divergence"
	"github.com/hupe1980/breggo/util"
	"github.com/hupe1980/breggo/vector"
)

func TestDistanceIsZeroAtCenter(t *testing.T) {
	points := map[divergence.Kind]vector.Weighted{
		divergence.SquaredEuclidean:     vector.Point(vector.Dense{1.5, -2, 3}),
		divergence.RelativeEntropy:      vector.Point(vector.Dense{0.2, 0.5, 0.3}),
		divergence.DiscreteKL:           vector.Point(vector.Dense{1, 2, 3}),
		divergence.GeneralizedI:         vector.NewWeighted(vector.Dense{0.8, 2.4, 5}, 2),
		divergence.DiscreteGeneralizedI: vector.Point(vector.Dense{2, 5, 1}),
		divergence.LogisticLoss:         vector.Point(vector.Dense{0.3}),
		divergence.ItakuraSaito:         vector.Point(vector.Dense{0.5, 1.5, 2}),
	}

	for kind, p := range points {
		div, err := divergence.New(kind)
		require.NoError(t, err)

		c := NewCenter(div, p)
		assert.InDelta(t, 0, Distance(div, p, c), 1e-12, kind.String())
	}
}

func TestDistanceNonNegative(t *testing.T) {
	rng := util.NewRNG(1)

	for _, kind := range []divergence.Kind{
		divergence.SquaredEuclidean,
		divergence.GeneralizedI,
		divergence.ItakuraSaito,
	} {
		div, err := divergence.New(kind)
		require.NoError(t, err)

		// Components in (0.1, 1.1) keep every point strictly inside all three
		// domains.
		shift := func(p vector.Weighted) vector.Weighted {
			v := vector.DenseCopy(p.Vec)
			for i := range v {
				v[i] += 0.1
			}
			return vector.Point(v)
		}

		points := rng.GeneratePoints(20, 4)
		for i := range points {
			points[i] = shift(points[i])
		}

		for _, cp := range points[:5] {
			c := NewCenter(div, cp)
			for _, x := range points {
				d := Distance(div, x, c)
				assert.GreaterOrEqual(t, d, -1e-12, "%s: d(%v, %v)", kind, x.Vec, cp.Vec)
			}
		}
	}
}

func TestDistanceMatchesDefinition(t *testing.T) {
	// The cached-dual evaluation must agree with the textbook expansion
	// F(x) − F(c) − ⟨x − c, gradF(c)⟩ on inhomogeneous coordinates.
	div := divergence.NewSquaredEuclidean()

	x := vector.NewWeighted(vector.Dense{2, 4, 6}, 2)
	cp := vector.Point(vector.Dense{1, 0, -1})
	c := NewCenter(div, cp)

	xi := x.Inhomogeneous()
	ci := cp.Inhomogeneous()
	grad := div.GradF(ci)

	want := div.F(xi) - div.F(ci)
	for i := range xi {
		want -= (xi[i] - ci[i]) * grad[i]
	}

	assert.InDelta(t, want, Distance(div, x, c), 1e-12)
}

func TestSetPointRecomputesDual(t *testing.T) {
	div := divergence.NewSquaredEuclidean()

	c := NewCenter(div, vector.Point(vector.Dense{1, 1}))
	assert.Equal(t, vector.Dense{2, 2}, c.Dual())

	c.SetPoint(div, vector.NewWeighted(vector.Dense{6, 2}, 2))
	assert.Equal(t, vector.Dense{6, 2}, c.Dual())
	assert.Equal(t, vector.Dense{3, 1}, c.Inhomogeneous())

	// Distances after the move must reflect the new center immediately.
	assert.InDelta(t, 0, Distance(div, vector.Point(vector.Dense{3, 1}), c), 1e-12)
}

func TestDistanceWithSharedF(t *testing.T) {
	div := divergence.NewSquaredEuclidean()

	x := vector.Point(vector.Dense{1, 2})
	fx := div.FWeighted(x.Vec, x.Weight)

	for _, cp := range []vector.Dense{{0, 0}, {1, 1}, {-3, 4}} {
		c := NewCenter(div, vector.Point(cp))
		assert.InDelta(t, Distance(div, x, c), DistanceWithF(fx, x, c), 1e-12)
	}
}

func TestLogisticLossOneDimensionalDual(t *testing.T) {
	div, err := divergence.New(divergence.LogisticLoss)
	require.NoError(t, err)

	c := NewCenter(div, vector.Point(vector.Dense{0.5}))
	require.Len(t, c.Dual(), 1)

	// d(x, 1/2) for logistic loss is the binary KL divergence against the
	// uniform coin: log 2 + x log x + (1-x) log(1-x).
	x := vector.Point(vector.Dense{0.9})
	want := 0.6931471805599453 + div.F(x.Vec)
	assert.InDelta(t, want, Distance(div, x, c), 1e-12)
}
