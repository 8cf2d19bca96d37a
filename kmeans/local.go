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

// localCluster reduces a small weighted pool to at most k centers: weighted
// k-means++ seeding followed by the same Lloyd loop, run on a
// single-partition dataset. The pool is O(ℓ·rounds) by construction, so this
// stays cheap and local.
func localCluster(ctx context.Context, div divergence.Divergence, pool []vector.Weighted, k int, tol float64, seed int64, run int, logger *slog.Logger) ([]bregman.Center, error) {
	rng := rand.New(rand.NewSource(seed ^ 0x5DEECE66D))

	seeds := weightedPlusPlus(div, pool, k, rng)
	if len(seeds) == 0 {
		return nil, nil
	}

	local := dataset.FromPartitions([][]vector.Weighted{pool})
	centers, _, _, err := lloydLoop(ctx, div, local, seeds, pool[0].Dim(), localMaxIterations, tol, run, logger, NoopMetricsCollector{})
	return centers, err
}

// weightedPlusPlus is k-means++ seeding over a weighted in-memory pool: the
// first seed is drawn with probability proportional to weight, each further
// seed with probability proportional to weight times the distance to the
// nearest chosen seed. Stops early when the remaining potential is zero
// (fewer distinct points than k).
func weightedPlusPlus(div divergence.Divergence, pool []vector.Weighted, k int, rng *rand.Rand) []bregman.Center {
	var totalWeight float64
	for _, p := range pool {
		totalWeight += p.Weight
	}
	if totalWeight <= 0 {
		return nil
	}

	first := sampleByWeight(pool, totalWeight, rng)
	centers := []bregman.Center{bregman.NewCenter(div, pool[first])}

	// potential[i] is weight_i times the distance to the nearest seed,
	// updated incrementally as seeds are added.
	potential := make([]float64, len(pool))
	var total float64
	for i, p := range pool {
		fx := div.FWeighted(p.Vec, p.Weight)
		if best, d := nearestCenter(fx, p, centers); best >= 0 {
			potential[i] = p.Weight * d
			total += potential[i]
		}
	}

	for len(centers) < k {
		if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
			break
		}

		target := rng.Float64() * total
		chosen := -1
		var cum float64
		for i, pot := range potential {
			cum += pot
			if cum > target {
				chosen = i
				break
			}
		}
		if chosen < 0 {
			break
		}

		centers = append(centers, bregman.NewCenter(div, pool[chosen]))

		last := centers[len(centers)-1]
		total = 0
		for i, p := range pool {
			if potential[i] > 0 {
				fx := div.FWeighted(p.Vec, p.Weight)
				if d := bregman.DistanceWithF(fx, p, last); d >= 0 && d*p.Weight < potential[i] {
					potential[i] = d * p.Weight
				}
			}
			total += potential[i]
		}
	}

	return centers
}

func sampleByWeight(pool []vector.Weighted, totalWeight float64, rng *rand.Rand) int {
	target := rng.Float64() * totalWeight
	var cum float64
	for i, p := range pool {
		cum += p.Weight
		if cum > target {
			return i
		}
	}
	return len(pool) - 1
}
