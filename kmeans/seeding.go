package kmeans

import (
	"context"
	"log/slog"
	"math"
	"math/rand"

	"github.com/hupe1980/breggo/bregman"
	"github.com/hupe1980/breggo/dataset"
	"github.com/hupe1980/breggo/divergence"
	"github.com/hupe1980/breggo/vector"
)

// seedCenters produces the initial centers for one run.
func seedCenters(ctx context.Context, cfg Config, div divergence.Divergence, ds *dataset.Dataset, seed int64, run int, logger *slog.Logger) ([]bregman.Center, error) {
	switch cfg.Initializer {
	case KMeansParallel:
		return parallelSeeds(ctx, cfg, div, ds, seed, run, logger)
	default:
		return randomSeeds(div, ds, cfg.K, seed), nil
	}
}

// randomSeeds draws k points uniformly without replacement. Duplicate values
// collapse, so fewer than k centers come back when fewer distinct points
// exist; downstream tolerates the smaller center count.
func randomSeeds(div divergence.Divergence, ds *dataset.Dataset, k int, seed int64) []bregman.Center {
	return distinctCenters(div, ds.TakeSample(k, seed), k)
}

// distinctCenters turns points into centers, collapsing points that stand for
// the same inhomogeneous location, capped at k.
func distinctCenters(div divergence.Divergence, pts []vector.Weighted, k int) []bregman.Center {
	centers := make([]bregman.Center, 0, k)
	for _, p := range pts {
		dup := false
		for i := range centers {
			if centers[i].Point().SamePoint(p) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		centers = append(centers, bregman.NewCenter(div, p))
		if len(centers) == k {
			break
		}
	}
	return centers
}

// parallelSeeds implements k-means‖: round 0 picks one point uniformly; each
// subsequent round samples points independently with probability
// ℓ·w·d(x)/totalCost, where d(x) is the distance to the nearest candidate so
// far. The accumulated pool (duplicates allowed) is then weighted by
// nearest-point counts and reduced to exactly k centers with a local weighted
// clustering pass. This trades k sequential passes of k-means++ for a fixed
// small number of rounds while keeping its approximation guarantee in
// expectation.
func parallelSeeds(ctx context.Context, cfg Config, div divergence.Divergence, ds *dataset.Dataset, seed int64, run int, logger *slog.Logger) ([]bregman.Center, error) {
	first := ds.TakeSample(1, seed)
	if len(first) == 0 {
		return nil, nil
	}

	pool := []vector.Weighted{first[0]}
	candidates := []bregman.Center{bregman.NewCenter(div, first[0])}
	ell := cfg.OversamplingFactor

	for round := 1; round <= cfg.InitializationRounds; round++ {
		snapshot := candidates

		total, err := dataset.Aggregate(ctx, ds,
			func() float64 { return 0 },
			func(cost float64, p vector.Weighted) float64 {
				fx := div.FWeighted(p.Vec, p.Weight)
				if best, d := nearestCenter(fx, p, snapshot); best >= 0 {
					cost += p.Weight * d
				}
				return cost
			},
			func(a, b float64) float64 { return a + b },
		)
		if err != nil {
			return nil, err
		}
		if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
			break
		}

		parts, err := dataset.MapPartitions(ctx, ds, func(partition int, part []vector.Weighted) ([]vector.Weighted, error) {
			rng := rand.New(rand.NewSource(seed + int64(round)*7919 + int64(partition)*0x9E3779B9))
			var out []vector.Weighted
			for _, p := range part {
				fx := div.FWeighted(p.Vec, p.Weight)
				best, d := nearestCenter(fx, p, snapshot)
				if best < 0 {
					continue
				}
				if rng.Float64() < ell*p.Weight*d/total {
					out = append(out, p)
				}
			}
			return out, nil
		})
		if err != nil {
			return nil, err
		}

		var sampled int
		for _, part := range parts {
			for _, p := range part {
				pool = append(pool, p)
				candidates = append(candidates, bregman.NewCenter(div, p))
				sampled++
			}
		}
		logger.Debug("k-means|| round",
			"run", run,
			"round", round,
			"sampled", sampled,
			"pool", len(pool),
		)
	}

	// Weight each candidate by the points it is nearest to, then shrink the
	// pool to k with a local weighted clustering pass. Duplicate candidates
	// tie-break to the lowest index, so later duplicates end up with zero
	// weight and drop out.
	weights, err := dataset.Aggregate(ctx, ds,
		func() []float64 { return make([]float64, len(candidates)) },
		func(w []float64, p vector.Weighted) []float64 {
			fx := div.FWeighted(p.Vec, p.Weight)
			if best, _ := nearestCenter(fx, p, candidates); best >= 0 {
				w[best] += p.Weight
			}
			return w
		},
		func(a, b []float64) []float64 {
			for i := range a {
				a[i] += b[i]
			}
			return a
		},
	)
	if err != nil {
		return nil, err
	}

	weighted := make([]vector.Weighted, 0, len(pool))
	for j, p := range pool {
		if weights[j] <= 0 {
			continue
		}
		weighted = append(weighted, reweight(p, weights[j]))
	}
	if len(weighted) == 0 {
		return nil, nil
	}

	return localCluster(ctx, div, weighted, cfg.K, cfg.Tolerance, seed, run, logger)
}

// reweight returns a weighted point standing for the same inhomogeneous
// location as p but carrying weight w.
func reweight(p vector.Weighted, w float64) vector.Weighted {
	if p.Weight == w {
		return p
	}
	scaled := vector.DenseCopy(p.Vec)
	s := w / p.Weight
	for i := range scaled {
		scaled[i] *= s
	}
	return vector.NewWeighted(scaled, w)
}
