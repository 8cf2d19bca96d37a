package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidRuns is returned when the run count is negative.
	ErrInvalidRuns = errors.New("runs must not be negative")

	// ErrEmptyDataset is returned when training is attempted on a dataset
	// without points.
	ErrEmptyDataset = errors.New("dataset has no points")

	// ErrAllRunsFailed is returned when no run produced any center. This is
	// the only fatal outcome of training on valid input; individual
	// degenerate runs merely lose the cost comparison.
	ErrAllRunsFailed = errors.New("all runs failed to produce centers")
)

// ErrDimensionMismatch indicates points of differing dimensionality in one
// dataset.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}
