package breggo

import (
	"github.com/hupe1980/breggo/divergence"
	"github.com/hupe1980/breggo/kmeans"
)

// Validation errors are reported before any clustering work begins;
// numerical edge cases during iteration degrade individual runs instead of
// failing, and ErrAllRunsFailed is the only fatal outcome on valid input.
var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = kmeans.ErrInvalidK

	// ErrInvalidRuns is returned when the run count is negative.
	ErrInvalidRuns = kmeans.ErrInvalidRuns

	// ErrEmptyDataset is returned when training is attempted on a dataset
	// without points.
	ErrEmptyDataset = kmeans.ErrEmptyDataset

	// ErrAllRunsFailed is returned when no run produced any center.
	ErrAllRunsFailed = kmeans.ErrAllRunsFailed
)

// ErrInvalidInput indicates a point outside the domain of the selected
// divergence, e.g. a negative component fed to the KL family.
type ErrInvalidInput = divergence.ErrInvalidInput

// ErrDimensionMismatch indicates points of differing dimensionality.
type ErrDimensionMismatch = kmeans.ErrDimensionMismatch
