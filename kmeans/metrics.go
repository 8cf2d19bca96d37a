package kmeans

import "time"

// MetricsCollector receives training progress events. Implementations must
// be safe for concurrent use; runs execute in parallel.
type MetricsCollector interface {
	// RecordSeeding is called once per run after seeding completes.
	// candidates is the number of centers the run starts from.
	RecordSeeding(run int, initializer string, candidates int, duration time.Duration)

	// RecordIteration is called after each Lloyd iteration with the
	// assignment cost of that iteration.
	RecordIteration(run, iteration int, cost float64, duration time.Duration)

	// RecordRun is called after a run finishes. err is nil unless the run
	// was aborted (cancellation); degenerate runs report +Inf cost.
	RecordRun(run, iterations int, cost float64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSeeding(int, string, int, time.Duration)   {}
func (NoopMetricsCollector) RecordIteration(int, int, float64, time.Duration) {}
func (NoopMetricsCollector) RecordRun(int, int, float64, time.Duration, error) {}
