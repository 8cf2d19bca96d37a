package kmeans

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/breggo/divergence"
)

// Initializer selects the seeding strategy.
type Initializer int

const (
	// Random draws k points uniformly without replacement.
	Random Initializer = iota
	// KMeansParallel is the multi-round oversampling scheme (k-means‖)
	// approximating k-means++ with few sequential passes.
	KMeansParallel
)

func (i Initializer) String() string {
	switch i {
	case Random:
		return "random"
	case KMeansParallel:
		return "k-means-parallel"
	default:
		return fmt.Sprintf("Unknown(%d)", int(i))
	}
}

// InitializerByName returns the Initializer with the given stable name.
func InitializerByName(name string) (Initializer, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random":
		return Random, true
	case "k-means-parallel", "k-means||", "parallel":
		return KMeansParallel, true
	default:
		return 0, false
	}
}

const (
	// DefaultMaxIterations bounds the Lloyd loop per run.
	DefaultMaxIterations = 20
	// DefaultInitializationRounds is the number of k-means‖ sampling rounds.
	DefaultInitializationRounds = 5
	// DefaultTolerance is the relative cost-improvement threshold below
	// which a run is considered converged.
	DefaultTolerance = 1e-4

	// localMaxIterations bounds the local Lloyd pass that reduces the
	// k-means‖ candidate pool to k centers.
	localMaxIterations = 30
)

// Config carries the recognized training options.
type Config struct {
	// K is the requested number of clusters. Runs may finish with fewer
	// centers when clusters empty out or fewer distinct points exist.
	K int

	// Divergence selects the distance function.
	Divergence divergence.Kind

	// MaxIterations bounds the Lloyd loop. Defaults to DefaultMaxIterations.
	MaxIterations int

	// Runs is the number of independent seeding+iteration trials; the
	// lowest-cost model wins. Defaults to 1.
	Runs int

	// Initializer selects the seeding strategy. The zero value is Random.
	Initializer Initializer

	// OversamplingFactor is the k-means‖ factor ℓ. Defaults to 2k.
	OversamplingFactor float64

	// InitializationRounds is the number of k-means‖ sampling rounds.
	// Defaults to DefaultInitializationRounds.
	InitializationRounds int

	// Tolerance is the relative cost-improvement threshold for convergence.
	// Defaults to DefaultTolerance.
	Tolerance float64

	// Seed makes training deterministic for a fixed dataset partitioning.
	Seed int64

	// Logger receives structured training logs. Nil discards.
	Logger *slog.Logger

	// Metrics receives training progress events. Nil disables collection.
	Metrics MetricsCollector
}

func (c Config) withDefaults() Config {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.Runs == 0 {
		c.Runs = 1
	}
	if c.OversamplingFactor <= 0 {
		c.OversamplingFactor = 2 * float64(c.K)
	}
	if c.InitializationRounds <= 0 {
		c.InitializationRounds = DefaultInitializationRounds
	}
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Metrics == nil {
		c.Metrics = NoopMetricsCollector{}
	}
	return c
}

// Validate reports configuration errors. Train calls this before any
// parallel work.
func (c Config) Validate() error {
	if c.K <= 0 {
		return ErrInvalidK
	}
	if c.Runs < 0 {
		return ErrInvalidRuns
	}
	if _, err := divergence.New(c.Divergence); err != nil {
		return err
	}
	return nil
}
