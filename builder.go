// Package breggo provides generalized K-means clustering under pluggable
// Bregman divergences.
//
// This file implements the fluent builder API for configuring trainers.
// Builders are immutable - each method returns a new builder with the updated
// configuration.
package breggo

import (
	"context"

	"github.com/hupe1980/breggo/dataset"
	"github.com/hupe1980/breggo/divergence"
	"github.com/hupe1980/breggo/kmeans"
)

// KMeans creates a new trainer builder for k clusters.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration. This ensures thread-safety and prevents accidental
// state sharing.
//
// Example:
//
//	trainer, err := breggo.KMeans(8).
//	    GeneralizedI().
//	    KMeansParallelInit().
//	    Runs(4).
//	    Seed(42).
//	    Build()
func KMeans(k int) Builder {
	return Builder{
		cfg: kmeans.Config{
			K:           k,
			Divergence:  divergence.SquaredEuclidean,
			Initializer: kmeans.KMeansParallel,
		},
	}
}

// Builder is an immutable fluent builder for trainers.
// Each method returns a new builder with the updated configuration.
type Builder struct {
	cfg kmeans.Config
}

// SquaredEuclidean sets the distance to squared Euclidean (classic K-means).
func (b Builder) SquaredEuclidean() Builder {
	b.cfg.Divergence = divergence.SquaredEuclidean
	return b
}

// RelativeEntropy sets the distance to Kullback-Leibler divergence on the
// simplex with the natural logarithm.
func (b Builder) RelativeEntropy() Builder {
	b.cfg.Divergence = divergence.RelativeEntropy
	return b
}

// DiscreteKL sets the distance to Kullback-Leibler divergence on the simplex
// with the count-data logarithm (log(0) = 0), for non-negative integer data.
func (b Builder) DiscreteKL() Builder {
	b.cfg.Divergence = divergence.DiscreteKL
	return b
}

// GeneralizedI sets the distance to the generalized KL / I-divergence on the
// non-negative orthant.
func (b Builder) GeneralizedI() Builder {
	b.cfg.Divergence = divergence.GeneralizedI
	return b
}

// DiscreteGeneralizedI sets the distance to the I-divergence with the
// count-data logarithm.
func (b Builder) DiscreteGeneralizedI() Builder {
	b.cfg.Divergence = divergence.DiscreteGeneralizedI
	return b
}

// LogisticLoss sets the distance to logistic loss on the first coordinate.
func (b Builder) LogisticLoss() Builder {
	b.cfg.Divergence = divergence.LogisticLoss
	return b
}

// ItakuraSaito sets the distance to the Itakura-Saito (Burg entropy)
// divergence.
func (b Builder) ItakuraSaito() Builder {
	b.cfg.Divergence = divergence.ItakuraSaito
	return b
}

// Divergence sets the distance by kind, for callers selecting it dynamically.
func (b Builder) Divergence(kind divergence.Kind) Builder {
	b.cfg.Divergence = kind
	return b
}

// RandomInit seeds each run with k points drawn uniformly.
func (b Builder) RandomInit() Builder {
	b.cfg.Initializer = kmeans.Random
	return b
}

// KMeansParallelInit seeds each run with the multi-round k-means‖
// oversampling scheme (the default).
func (b Builder) KMeansParallelInit() Builder {
	b.cfg.Initializer = kmeans.KMeansParallel
	return b
}

// Runs sets the number of independent seeding+iteration trials; the
// lowest-cost model wins. Default: 1.
func (b Builder) Runs(runs int) Builder {
	b.cfg.Runs = runs
	return b
}

// MaxIterations bounds the Lloyd loop per run.
// Default: kmeans.DefaultMaxIterations.
func (b Builder) MaxIterations(n int) Builder {
	b.cfg.MaxIterations = n
	return b
}

// Tolerance sets the relative cost-improvement threshold below which a run is
// considered converged. Default: kmeans.DefaultTolerance.
func (b Builder) Tolerance(tol float64) Builder {
	b.cfg.Tolerance = tol
	return b
}

// OversamplingFactor sets the k-means‖ factor ℓ. Default: 2k.
func (b Builder) OversamplingFactor(ell float64) Builder {
	b.cfg.OversamplingFactor = ell
	return b
}

// InitializationRounds sets the number of k-means‖ sampling rounds.
// Default: kmeans.DefaultInitializationRounds.
func (b Builder) InitializationRounds(rounds int) Builder {
	b.cfg.InitializationRounds = rounds
	return b
}

// Seed makes training deterministic for a fixed dataset partitioning.
func (b Builder) Seed(seed int64) Builder {
	b.cfg.Seed = seed
	return b
}

// Logger sets the logger for training progress. Nil discards.
func (b Builder) Logger(l *Logger) Builder {
	if l != nil {
		b.cfg.Logger = l.Logger
	}
	return b
}

// Metrics sets the metrics collector for training progress. Nil disables
// collection.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	b.cfg.Metrics = mc
	return b
}

// Build validates the configuration and returns a Trainer.
// Validation errors surface here, before any data is touched.
func (b Builder) Build() (*Trainer, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	return &Trainer{cfg: b.cfg}, nil
}

// Trainer runs generalized K-means with a frozen configuration. A Trainer is
// immutable and safe for concurrent use; each Fit owns its runs' state.
type Trainer struct {
	cfg kmeans.Config
}

// Fit clusters ds and returns the lowest-cost model across the configured
// runs.
func (t *Trainer) Fit(ctx context.Context, ds *dataset.Dataset) (*kmeans.Model, error) {
	return kmeans.Train(ctx, t.cfg, ds)
}

// Config returns a copy of the trainer's configuration.
func (t *Trainer) Config() kmeans.Config { return t.cfg }
