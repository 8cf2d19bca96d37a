package breggo

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/breggo/kmeans"
)

// MetricsCollector receives training progress events.
// Implement this interface to integrate with monitoring systems like
// Prometheus; runs execute in parallel, so implementations must be safe for
// concurrent use.
type MetricsCollector = kmeans.MetricsCollector

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector = kmeans.NoopMetricsCollector

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SeedingCount        atomic.Int64
	SeedingTotalNanos   atomic.Int64
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
	RunCount            atomic.Int64
	RunErrors           atomic.Int64
	RunTotalNanos       atomic.Int64
}

// RecordSeeding implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSeeding(_ int, _ string, _ int, duration time.Duration) {
	b.SeedingCount.Add(1)
	b.SeedingTotalNanos.Add(duration.Nanoseconds())
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(_, _ int, _ float64, duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_, _ int, _ float64, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
}
