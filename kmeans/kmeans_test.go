package kmeans

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/breggo/bregman"
	"github.com/hupe1980/breggo/dataset"
	"github.com/hupe1980/breggo/divergence"
	"github.com/hupe1980/breggo/vector"
)

func densePoints(rows ...[]float64) []vector.Weighted {
	out := make([]vector.Weighted, len(rows))
	for i, r := range rows {
		out[i] = vector.Point(vector.Dense(r))
	}
	return out
}

func TestSingleClusterIsMean(t *testing.T) {
	// Three points with mean (1, 3, 4). With k=1 every Lloyd iteration
	// reproduces the same center, so the result must be stable across
	// iteration budgets, initializers and divergences.
	points := densePoints(
		[]float64{1, 2, 6},
		[]float64{1, 3, 0},
		[]float64{1, 4, 6},
	)

	for _, kind := range []divergence.Kind{
		divergence.SquaredEuclidean,
		divergence.DiscreteKL,
		divergence.GeneralizedI,
	} {
		for _, init := range []Initializer{Random, KMeansParallel} {
			for _, maxIter := range []int{1, 2, 5} {
				ds := dataset.FromSlice(points, 2)

				m, err := Train(context.Background(), Config{
					K:             1,
					Divergence:    kind,
					Initializer:   init,
					MaxIterations: maxIter,
					Seed:          42,
				}, ds)
				require.NoError(t, err, "%s/%s/iter=%d", kind, init, maxIter)
				require.Equal(t, 1, m.K())

				center := m.Centers()[0]
				assert.InDelta(t, 1, center[0], 1e-5, "%s/%s/iter=%d", kind, init, maxIter)
				assert.InDelta(t, 3, center[1], 1e-5, "%s/%s/iter=%d", kind, init, maxIter)
				assert.InDelta(t, 4, center[2], 1e-5, "%s/%s/iter=%d", kind, init, maxIter)
			}
		}
	}
}

func TestDuplicatePointsCollapse(t *testing.T) {
	points := densePoints(
		[]float64{1, 2, 3},
		[]float64{1, 2, 3},
		[]float64{1, 2, 3},
	)

	for _, init := range []Initializer{Random, KMeansParallel} {
		ds := dataset.FromSlice(points, 2)

		m, err := Train(context.Background(), Config{K: 2, Initializer: init, Seed: 1}, ds)
		require.NoError(t, err, init.String())

		assert.Equal(t, 1, m.K(), init.String())
		assert.InDelta(t, 0, m.Cost(), 1e-12)
		assert.Equal(t, vector.Dense{1, 2, 3}, m.Centers()[0])
	}
}

func TestFewerDistinctPointsThanK(t *testing.T) {
	points := densePoints(
		[]float64{1, 2, 3},
		[]float64{4, 5, 6},
	)

	for _, init := range []Initializer{Random, KMeansParallel} {
		ds := dataset.FromSlice(points, 1)

		m, err := Train(context.Background(), Config{K: 3, Initializer: init, Seed: 9}, ds)
		require.NoError(t, err, init.String())

		assert.Equal(t, 2, m.K(), init.String())
		assert.InDelta(t, 0, m.Cost(), 1e-12)
	}
}

func TestWellSeparatedPointsExactRecovery(t *testing.T) {
	// Five points pairwise far apart: the origin plus 10·e_i for each axis.
	// With k equal to the point count every point becomes its own center and
	// further iterations must not move anything.
	points := densePoints(
		[]float64{0, 0, 0, 0},
		[]float64{10, 0, 0, 0},
		[]float64{0, 10, 0, 0},
		[]float64{0, 0, 10, 0},
		[]float64{0, 0, 0, 10},
	)

	for _, init := range []Initializer{Random, KMeansParallel} {
		for _, maxIter := range []int{1, 5} {
			ds := dataset.FromSlice(points, 2)

			m, err := Train(context.Background(), Config{
				K:             5,
				Initializer:   init,
				MaxIterations: maxIter,
				Seed:          7,
			}, ds)
			require.NoError(t, err, "%s/iter=%d", init, maxIter)

			require.Equal(t, 5, m.K(), "%s/iter=%d", init, maxIter)
			assert.InDelta(t, 0, m.Cost(), 1e-9)

			for _, p := range points {
				_, d := m.Predict(p)
				assert.InDelta(t, 0, d, 1e-9)
			}
		}
	}
}

func TestTwoClustersSeparate(t *testing.T) {
	// Two tight groups around (0,0) and (9,0). Two iterations are enough to
	// separate them from any choice of initial points.
	points := densePoints(
		[]float64{0, 0},
		[]float64{1, 0},
		[]float64{0, 1},
		[]float64{9, 0},
		[]float64{10, 0},
		[]float64{9, 1},
	)

	for _, init := range []Initializer{Random, KMeansParallel} {
		ds := dataset.FromSlice(points, 3)

		m, err := Train(context.Background(), Config{
			K:             2,
			Initializer:   init,
			MaxIterations: 2,
			Runs:          3,
			Seed:          5,
		}, ds)
		require.NoError(t, err, init.String())
		require.Equal(t, 2, m.K(), init.String())

		labels, err := m.Labels(context.Background(), ds)
		require.NoError(t, err)
		require.Len(t, labels, 6)

		assert.Equal(t, labels[0], labels[1], init.String())
		assert.Equal(t, labels[0], labels[2], init.String())
		assert.Equal(t, labels[3], labels[4], init.String())
		assert.Equal(t, labels[3], labels[5], init.String())
		assert.NotEqual(t, labels[0], labels[3], init.String())
	}
}

func TestWeightedPointsPullTheMean(t *testing.T) {
	// A point of weight 3 at the origin against an unweighted point at (4,4):
	// the k=1 center is the weighted mean (1,1).
	points := []vector.Weighted{
		vector.NewWeighted(vector.Dense{0, 0}, 3),
		vector.Point(vector.Dense{4, 4}),
	}
	ds := dataset.FromSlice(points, 1)

	m, err := Train(context.Background(), Config{K: 1, Seed: 3}, ds)
	require.NoError(t, err)
	require.Equal(t, 1, m.K())

	center := m.Centers()[0]
	assert.InDelta(t, 1, center[0], 1e-9)
	assert.InDelta(t, 1, center[1], 1e-9)
}

func TestHomogeneousDuplicateEqualsWeight(t *testing.T) {
	// (2,4,6) with weight 2 stands for (1,2,3) counted twice. Together with an
	// unweighted (4,5,6), the k=1 center is (2·(1,2,3)+(4,5,6))/3 = (2,3,4).
	points := []vector.Weighted{
		vector.NewWeighted(vector.Dense{2, 4, 6}, 2),
		vector.Point(vector.Dense{4, 5, 6}),
	}
	ds := dataset.FromSlice(points, 1)

	m, err := Train(context.Background(), Config{K: 1, Seed: 3}, ds)
	require.NoError(t, err)

	center := m.Centers()[0]
	assert.InDelta(t, 2, center[0], 1e-9)
	assert.InDelta(t, 3, center[1], 1e-9)
	assert.InDelta(t, 4, center[2], 1e-9)
}

func TestTrainDeterministicForSeed(t *testing.T) {
	points := densePoints(
		[]float64{0, 0}, []float64{1, 0}, []float64{0, 1},
		[]float64{9, 0}, []float64{10, 0}, []float64{9, 1},
		[]float64{5, 5}, []float64{4, 5},
	)

	train := func() *Model {
		ds := dataset.FromSlice(points, 4)
		m, err := Train(context.Background(), Config{
			K:           3,
			Initializer: KMeansParallel,
			Runs:        2,
			Seed:        1234,
		}, ds)
		require.NoError(t, err)
		return m
	}

	a, b := train(), train()
	require.Equal(t, a.K(), b.K())
	assert.Equal(t, a.Cost(), b.Cost())
	assert.Equal(t, a.Centers(), b.Centers())
}

func TestBoundaryPointsAreSkipped(t *testing.T) {
	// Itakura-Saito puts points with zero components on the domain boundary:
	// their distance to any center is +Inf, so they drop out of assignment
	// instead of poisoning the centers.
	points := densePoints(
		[]float64{1, 2},
		[]float64{3, 2},
		[]float64{0, 2},
	)
	ds := dataset.FromSlice(points, 1)

	// A run whose seeding draws the boundary point itself degenerates; with
	// several runs the interior seedings win the cost comparison.
	m, err := Train(context.Background(), Config{
		K:          1,
		Divergence: divergence.ItakuraSaito,
		Runs:       5,
		Seed:       21,
	}, ds)
	require.NoError(t, err)
	require.Equal(t, 1, m.K())

	center := m.Centers()[0]
	assert.InDelta(t, 2, center[0], 1e-9)
	assert.InDelta(t, 2, center[1], 1e-9)
	assert.False(t, math.IsInf(m.Cost(), 0))

	labels, err := m.Labels(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, -1}, labels)
}

func TestAllRunsFailed(t *testing.T) {
	// Every point is on the Itakura-Saito boundary, so every run degenerates.
	points := densePoints(
		[]float64{0, 1},
		[]float64{1, 0},
	)
	ds := dataset.FromSlice(points, 1)

	_, err := Train(context.Background(), Config{
		K:          1,
		Divergence: divergence.ItakuraSaito,
		Runs:       2,
		Seed:       8,
	}, ds)
	assert.ErrorIs(t, err, ErrAllRunsFailed)
}

func TestTrainValidation(t *testing.T) {
	ds := dataset.FromSlice(densePoints([]float64{1, 2}), 1)

	_, err := Train(context.Background(), Config{K: 0}, ds)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = Train(context.Background(), Config{K: 1, Runs: -1}, ds)
	assert.ErrorIs(t, err, ErrInvalidRuns)

	_, err = Train(context.Background(), Config{K: 1}, dataset.FromSlice(nil, 1))
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = Train(context.Background(), Config{K: 1}, nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestTrainRejectsMixedDimensions(t *testing.T) {
	ds := dataset.FromSlice(densePoints(
		[]float64{1, 2},
		[]float64{1, 2, 3},
	), 1)

	_, err := Train(context.Background(), Config{K: 1}, ds)

	var mismatch *ErrDimensionMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Expected)
	assert.Equal(t, 3, mismatch.Actual)
}

func TestTrainRejectsOutOfDomainPoints(t *testing.T) {
	ds := dataset.FromSlice(densePoints(
		[]float64{0.5, 0.5},
		[]float64{0.5, -0.5},
	), 1)

	_, err := Train(context.Background(), Config{
		K:          1,
		Divergence: divergence.GeneralizedI,
	}, ds)

	var invalid *divergence.ErrInvalidInput
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, divergence.GeneralizedI, invalid.Kind)
}

func TestTrainCancellation(t *testing.T) {
	ds := dataset.FromSlice(densePoints(
		[]float64{1, 2},
		[]float64{3, 4},
	), 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Train(ctx, Config{K: 1}, ds)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClusterMembersPartitionThePoints(t *testing.T) {
	points := densePoints(
		[]float64{0, 0}, []float64{1, 0}, []float64{0, 1},
		[]float64{9, 0}, []float64{10, 0}, []float64{9, 1},
	)
	ds := dataset.FromSlice(points, 2)

	m, err := Train(context.Background(), Config{K: 2, MaxIterations: 2, Runs: 3, Seed: 5}, ds)
	require.NoError(t, err)
	require.Equal(t, 2, m.K())

	var total uint64
	for i := 0; i < m.K(); i++ {
		total += m.ClusterMembers(i).GetCardinality()
	}
	assert.Equal(t, uint64(6), total)

	// Membership bitmaps agree with Labels.
	labels, err := m.Labels(context.Background(), ds)
	require.NoError(t, err)
	for idx, label := range labels {
		assert.True(t, m.ClusterMembers(label).Contains(uint32(idx)), "point %d", idx)
	}
}

func TestRestoreModelPredicts(t *testing.T) {
	centers := []vector.Weighted{
		vector.NewWeighted(vector.Dense{2, 0}, 2),
		vector.Point(vector.Dense{5, 5}),
	}

	m, err := RestoreModel(divergence.SquaredEuclidean, centers, 1.25, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, m.K())
	assert.Equal(t, 1.25, m.Cost())
	assert.Equal(t, divergence.SquaredEuclidean, m.Kind())

	best, d := m.Predict(vector.Point(vector.Dense{1, 0}))
	assert.Equal(t, 0, best)
	assert.InDelta(t, 0, d, 1e-12)

	best, _ = m.Predict(vector.Point(vector.Dense{6, 6}))
	assert.Equal(t, 1, best)
}

func TestNearestCenterTieBreaksLow(t *testing.T) {
	div := divergence.NewSquaredEuclidean()

	// (1,0) and (-1,0) are equidistant from the origin; the lower index wins.
	centers := []bregman.Center{
		bregman.NewCenter(div, vector.Point(vector.Dense{1, 0})),
		bregman.NewCenter(div, vector.Point(vector.Dense{-1, 0})),
	}

	p := vector.Point(vector.Dense{0, 0})
	fx := div.FWeighted(p.Vec, p.Weight)

	best, d := nearestCenter(fx, p, centers)
	assert.Equal(t, 0, best)
	assert.InDelta(t, 1, d, 1e-12)
}

func TestInitializerByName(t *testing.T) {
	tests := []struct {
		name string
		want Initializer
		ok   bool
	}{
		{"random", Random, true},
		{"k-means-parallel", KMeansParallel, true},
		{"K-MEANS||", KMeansParallel, true},
		{"parallel", KMeansParallel, true},
		{"frobnicate", 0, false},
	}

	for _, tt := range tests {
		got, ok := InitializerByName(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.name)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{K: 4}.withDefaults()

	assert.Equal(t, DefaultMaxIterations, cfg.MaxIterations)
	assert.Equal(t, 1, cfg.Runs)
	assert.Equal(t, 8.0, cfg.OversamplingFactor)
	assert.Equal(t, DefaultInitializationRounds, cfg.InitializationRounds)
	assert.Equal(t, DefaultTolerance, cfg.Tolerance)
	assert.NotNil(t, cfg.Logger)
	assert.NotNil(t, cfg.Metrics)
}

func TestDimensionMismatchMessage(t *testing.T) {
	err := &ErrDimensionMismatch{Expected: 3, Actual: 2}
	assert.Contains(t, err.Error(), "3")
	assert.Contains(t, err.Error(), "2")
}
