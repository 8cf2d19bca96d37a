package dataset

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/breggo/vector"
)

// Map applies f to every point in parallel and returns a new dataset with the
// same partitioning.
func Map(ctx context.Context, d *Dataset, f func(vector.Weighted) vector.Weighted) (*Dataset, error) {
	parts, err := MapPartitions(ctx, d, func(_ int, part []vector.Weighted) ([]vector.Weighted, error) {
		out := make([]vector.Weighted, len(part))
		for i, p := range part {
			out[i] = f(p)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return FromPartitions(parts), nil
}

// MapPartitions applies f to each partition in parallel. Results are returned
// in partition order, so downstream consumers are deterministic for a fixed
// partitioning.
func MapPartitions[T any](ctx context.Context, d *Dataset, f func(partition int, part []vector.Weighted) (T, error)) ([]T, error) {
	out := make([]T, len(d.parts))

	g, ctx := errgroup.WithContext(ctx)
	for i := range d.parts {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := f(i, d.parts[i])
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Aggregate performs a distributed-style reduction: seqOp folds the points of
// a partition into that partition's accumulator (starting from zero()), and
// combOp merges the per-partition accumulators in partition order. combOp
// must be associative; seqOp may mutate and return its accumulator.
func Aggregate[A any](ctx context.Context, d *Dataset, zero func() A, seqOp func(A, vector.Weighted) A, combOp func(A, A) A) (A, error) {
	accs, err := MapPartitions(ctx, d, func(_ int, part []vector.Weighted) (A, error) {
		acc := zero()
		for _, p := range part {
			acc = seqOp(acc, p)
		}
		return acc, nil
	})
	if err != nil {
		var empty A
		return empty, err
	}

	acc := accs[0]
	for _, a := range accs[1:] {
		acc = combOp(acc, a)
	}
	return acc, nil
}
