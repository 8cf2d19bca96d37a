package util

import (
	"math/rand"

	"github.com/hupe1980/breggo/vector"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Float64 returns a pseudo-random number in [0, 1).
func (r *RNG) Float64() float64 { return r.rand.Float64() }

// Intn returns a pseudo-random number in [0, n).
func (r *RNG) Intn(n int) int { return r.rand.Intn(n) }

// GeneratePoints generates num unweighted dense points with components in
// [0, 1), using the given RNG. Intended for tests and benchmarks.
func (r *RNG) GeneratePoints(num, dimensions int) []vector.Weighted {
	points := make([]vector.Weighted, num)
	for i := range points {
		v := make(vector.Dense, dimensions)
		for j := range v {
			v[j] = r.rand.Float64()
		}
		points[i] = vector.Point(v)
	}

	return points
}

// GeneratePointsAround generates num points scattered uniformly within
// spread of the given location. Intended for tests that need separated
// clusters.
func (r *RNG) GeneratePointsAround(center []float64, num int, spread float64) []vector.Weighted {
	points := make([]vector.Weighted, num)
	for i := range points {
		v := make(vector.Dense, len(center))
		for j := range v {
			v[j] = center[j] + (r.rand.Float64()*2-1)*spread
		}
		points[i] = vector.Point(v)
	}

	return points
}
