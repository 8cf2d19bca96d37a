package kmeans

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/hupe1980/breggo/bregman"
	"github.com/hupe1980/breggo/dataset"
	"github.com/hupe1980/breggo/divergence"
	"github.com/hupe1980/breggo/vector"
)

// updateAcc accumulates one Lloyd iteration: per-center homogeneous sums and
// the total assignment cost. Merging two accumulators is component-wise, so
// the aggregate is order-insensitive across partitions.
type updateAcc struct {
	sums    []vector.Dense
	weights []float64
	counts  []int64
	cost    float64
	skipped int64
}

func newUpdateAcc(k, dim int) *updateAcc {
	acc := &updateAcc{
		sums:    make([]vector.Dense, k),
		weights: make([]float64, k),
		counts:  make([]int64, k),
	}
	for j := range acc.sums {
		acc.sums[j] = make(vector.Dense, dim)
	}
	return acc
}

func (a *updateAcc) merge(b *updateAcc) *updateAcc {
	for j := range a.sums {
		for i := range a.sums[j] {
			a.sums[j][i] += b.sums[j][i]
		}
		a.weights[j] += b.weights[j]
		a.counts[j] += b.counts[j]
	}
	a.cost += b.cost
	a.skipped += b.skipped
	return a
}

// nearestCenter returns the index and distance of the nearest center under
// div, given F(x) precomputed. Non-finite distances are excluded from the
// minimum; ties go to the lowest center index. Returns -1 if every distance
// is non-finite.
func nearestCenter(fx float64, p vector.Weighted, centers []bregman.Center) (int, float64) {
	best := -1
	bestD := math.Inf(1)
	for j := range centers {
		d := bregman.DistanceWithF(fx, p, centers[j])
		if d < bestD && !math.IsInf(d, 0) && !math.IsNaN(d) {
			bestD = d
			best = j
		}
	}
	return best, bestD
}

// lloydLoop runs generalized Lloyd iterations over ds starting from the given
// centers and returns the surviving centers, the assignment cost of the last
// iteration, and the iteration count.
//
// Each iteration is a single aggregate pass: every point is assigned to its
// nearest center (distance via the centers' cached duals) while its
// homogeneous coordinates are folded into that center's accumulator. The new
// centers are the weighted means, which minimize the summed divergence for
// this point-first distance orientation; empty clusters are dropped. The loop
// stops when the cost improves by less than tol relative to the previous
// iteration, or after maxIter iterations.
func lloydLoop(ctx context.Context, div divergence.Divergence, ds *dataset.Dataset, centers []bregman.Center, dim, maxIter int, tol float64, run int, logger *slog.Logger, metrics MetricsCollector) ([]bregman.Center, float64, int, error) {
	prevCost := math.Inf(1)
	iters := 0

	for iter := 0; iter < maxIter && len(centers) > 0; iter++ {
		start := time.Now()
		snapshot := centers // immutable during the pass

		acc, err := dataset.Aggregate(ctx, ds,
			func() *updateAcc { return newUpdateAcc(len(snapshot), dim) },
			func(acc *updateAcc, p vector.Weighted) *updateAcc {
				fx := div.FWeighted(p.Vec, p.Weight)
				best, d := nearestCenter(fx, p, snapshot)
				if best < 0 {
					acc.skipped++
					return acc
				}
				acc.cost += p.Weight * d
				vector.AddScaled(acc.sums[best], 1, p.Vec)
				acc.weights[best] += p.Weight
				acc.counts[best]++
				return acc
			},
			func(a, b *updateAcc) *updateAcc { return a.merge(b) },
		)
		if err != nil {
			return nil, 0, iters, err
		}
		iters++

		next := make([]bregman.Center, 0, len(snapshot))
		for j := range acc.sums {
			if acc.counts[j] == 0 || acc.weights[j] <= 0 {
				continue
			}
			next = append(next, bregman.NewCenter(div, vector.NewWeighted(acc.sums[j], acc.weights[j])))
		}

		if acc.skipped > 0 {
			logger.Warn("non-finite distances, points skipped",
				"run", run,
				"iteration", iter,
				"skipped", acc.skipped,
			)
		}
		logger.Debug("lloyd iteration",
			"run", run,
			"iteration", iter,
			"cost", acc.cost,
			"centers", len(next),
		)
		metrics.RecordIteration(run, iter, acc.cost, time.Since(start))

		centers = next
		if len(centers) == 0 {
			// Every point was skipped; the run degenerates and loses the
			// multi-run comparison.
			return nil, math.Inf(1), iters, nil
		}

		improved := prevCost - acc.cost
		if !math.IsInf(prevCost, 1) && improved <= tol*math.Abs(prevCost) {
			prevCost = acc.cost
			break
		}
		prevCost = acc.cost
	}

	return centers, prevCost, iters, nil
}
