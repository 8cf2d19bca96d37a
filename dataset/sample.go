package dataset

import (
	"context"
	"math"
	"math/rand"

	"github.com/hupe1980/breggo/vector"
)

// partitionSeed derives a per-partition seed so sampling is deterministic for
// a fixed seed and partitioning, independent of scheduling order.
func partitionSeed(seed int64, partition int) int64 {
	return seed + int64(partition)*0x9E3779B9
}

// Sample returns a new dataset containing each point independently with the
// given fraction. Without replacement each point is kept with probability
// fraction (Bernoulli); with replacement each point is repeated a
// Poisson(fraction)-distributed number of times.
func (d *Dataset) Sample(ctx context.Context, withReplacement bool, fraction float64, seed int64) (*Dataset, error) {
	parts, err := MapPartitions(ctx, d, func(partition int, part []vector.Weighted) ([]vector.Weighted, error) {
		rng := rand.New(rand.NewSource(partitionSeed(seed, partition)))
		var out []vector.Weighted
		for _, p := range part {
			if withReplacement {
				for n := poisson(rng, fraction); n > 0; n-- {
					out = append(out, p)
				}
			} else if rng.Float64() < fraction {
				out = append(out, p)
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return FromPartitions(parts), nil
}

// TakeSample returns up to n points drawn uniformly without replacement.
// A single reservoir pass keeps the result exact for any n.
func (d *Dataset) TakeSample(n int, seed int64) []vector.Weighted {
	if n <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	reservoir := make([]vector.Weighted, 0, n)
	seen := 0
	for _, part := range d.parts {
		for _, p := range part {
			if len(reservoir) < n {
				reservoir = append(reservoir, p)
			} else if j := rng.Intn(seen + 1); j < n {
				reservoir[j] = p
			}
			seen++
		}
	}
	return reservoir
}

// poisson draws from Poisson(lambda) by inversion (Knuth). Sampling
// fractions are small, so the expected loop length is short.
func poisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= l {
			return k
		}
		k++
	}
}
