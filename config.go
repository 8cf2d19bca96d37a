package breggo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/hupe1980/breggo/divergence"
	"github.com/hupe1980/breggo/kmeans"
)

// Config is the file form of the training options, for jobs configured via
// YAML instead of the fluent API. Zero fields fall back to the same defaults
// as the builder.
type Config struct {
	K                    int     `yaml:"k"`
	Divergence           string  `yaml:"divergence"`
	Initializer          string  `yaml:"initializer"`
	Runs                 int     `yaml:"runs"`
	MaxIterations        int     `yaml:"max_iterations"`
	Tolerance            float64 `yaml:"tolerance"`
	OversamplingFactor   float64 `yaml:"oversampling_factor"`
	InitializationRounds int     `yaml:"initialization_rounds"`
	Seed                 int64   `yaml:"seed"`
}

// LoadConfig reads a YAML training configuration from path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Builder turns the file configuration into a fluent builder, so file-driven
// and programmatic setups share one validation path.
func (c *Config) Builder() (Builder, error) {
	b := KMeans(c.K)

	if c.Divergence != "" {
		kind, ok := divergence.KindByName(c.Divergence)
		if !ok {
			return Builder{}, fmt.Errorf("unknown divergence %q", c.Divergence)
		}
		b = b.Divergence(kind)
	}
	if c.Initializer != "" {
		init, ok := kmeans.InitializerByName(c.Initializer)
		if !ok {
			return Builder{}, fmt.Errorf("unknown initializer %q", c.Initializer)
		}
		if init == kmeans.Random {
			b = b.RandomInit()
		} else {
			b = b.KMeansParallelInit()
		}
	}
	if c.Runs != 0 {
		b = b.Runs(c.Runs)
	}
	if c.MaxIterations != 0 {
		b = b.MaxIterations(c.MaxIterations)
	}
	if c.Tolerance != 0 {
		b = b.Tolerance(c.Tolerance)
	}
	if c.OversamplingFactor != 0 {
		b = b.OversamplingFactor(c.OversamplingFactor)
	}
	if c.InitializationRounds != 0 {
		b = b.InitializationRounds(c.InitializationRounds)
	}
	b = b.Seed(c.Seed)

	return b, nil
}
