package kmeans

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/breggo/dataset"
	"github.com/hupe1980/breggo/divergence"
	"github.com/hupe1980/breggo/vector"
)

// Train runs cfg.Runs independent seeding+iteration trials over ds in
// parallel and returns the model with the lowest total cost, ties broken by
// the earliest run index. Configuration and input validation happen before
// any parallel work; numerical edge cases during iteration degrade
// individual runs instead of aborting them, and only a total failure of
// every run is an error.
func Train(ctx context.Context, cfg Config, ds *dataset.Dataset) (*Model, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	div, err := divergence.New(cfg.Divergence)
	if err != nil {
		return nil, err
	}
	if ds == nil || ds.Count() == 0 {
		return nil, ErrEmptyDataset
	}

	dim, err := validatePoints(ctx, div, ds)
	if err != nil {
		return nil, err
	}

	// The same points are read once per seeding round and once per
	// iteration; keep them resident for the whole job.
	ds.Cache()
	defer ds.Unpersist()

	models := make([]*Model, cfg.Runs)
	g, gctx := errgroup.WithContext(ctx)
	for run := 0; run < cfg.Runs; run++ {
		run := run
		g.Go(func() error {
			m, err := trainRun(gctx, cfg, div, ds, dim, run)
			if err != nil {
				return err
			}
			models[run] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := -1
	for run, m := range models {
		if m == nil || m.K() == 0 || math.IsInf(m.cost, 0) || math.IsNaN(m.cost) {
			continue
		}
		// Strict comparison keeps the earliest run on ties.
		if best < 0 || m.cost < models[best].cost {
			best = run
		}
	}
	if best < 0 {
		return nil, ErrAllRunsFailed
	}

	cfg.Logger.Info("training finished",
		"divergence", cfg.Divergence.String(),
		"k", cfg.K,
		"centers", models[best].K(),
		"cost", models[best].cost,
		"best_run", best,
		"runs", cfg.Runs,
	)
	return models[best], nil
}

// trainRun executes one independent seeding+iteration trial. Each run owns
// its centers from its own seeding draw; runs share only the read-only
// dataset.
func trainRun(ctx context.Context, cfg Config, div divergence.Divergence, ds *dataset.Dataset, dim, run int) (*Model, error) {
	start := time.Now()
	seed := runSeed(cfg.Seed, run)

	seedStart := time.Now()
	centers, err := seedCenters(ctx, cfg, div, ds, seed, run, cfg.Logger)
	if err != nil {
		return nil, err
	}
	cfg.Metrics.RecordSeeding(run, cfg.Initializer.String(), len(centers), time.Since(seedStart))
	cfg.Logger.Debug("seeded",
		"run", run,
		"initializer", cfg.Initializer.String(),
		"centers", len(centers),
	)

	var iters int
	if len(centers) > 0 {
		centers, _, iters, err = lloydLoop(ctx, div, ds, centers, dim, cfg.MaxIterations, cfg.Tolerance, run, cfg.Logger, cfg.Metrics)
		if err != nil {
			return nil, err
		}
	}

	model, err := buildModel(ctx, div, cfg.Divergence, ds, centers)
	cfg.Metrics.RecordRun(run, iters, modelCost(model), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return model, nil
}

func modelCost(m *Model) float64 {
	if m == nil {
		return math.Inf(1)
	}
	return m.cost
}

// runSeed derives a per-run seed so runs are independent yet the whole job is
// deterministic for a fixed Config.Seed.
func runSeed(seed int64, run int) int64 {
	return seed + int64(run)*0x9E3779B9
}

// validatePoints checks every point against the divergence's domain and the
// dataset for a uniform dimensionality, returning that dimensionality.
// Violations are fatal before any clustering work begins.
func validatePoints(ctx context.Context, div divergence.Divergence, ds *dataset.Dataset) (int, error) {
	var dim int
	for i := 0; i < ds.NumPartitions(); i++ {
		if part := ds.Partition(i); len(part) > 0 {
			dim = part[0].Dim()
			break
		}
	}

	_, err := dataset.MapPartitions(ctx, ds, func(_ int, part []vector.Weighted) (struct{}, error) {
		for _, p := range part {
			if p.Dim() != dim {
				return struct{}{}, &ErrDimensionMismatch{Expected: dim, Actual: p.Dim()}
			}
			if err := div.Validate(p); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	return dim, err
}
