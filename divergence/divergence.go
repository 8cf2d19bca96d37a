package divergence

import (
	"fmt"

	"github.com/hupe1980/breggo/vector"
)

// Divergence is a convex function F with its gradient, evaluated either on a
// plain vector or on a weighted point in homogeneous coordinates.
//
// The weighted overloads must satisfy, for weight > 0 and up to floating
// error:
//
//	FWeighted(v, w)     == F(v/w)
//	GradFWeighted(v, w) == GradF(v/w)
//
// computed without materializing v/w.
//
// F and GradF do not validate their input; callers that cannot guarantee the
// divergence's domain run Validate first.
type Divergence interface {
	// Kind identifies the divergence.
	Kind() Kind

	// F evaluates the convex function at v.
	F(v vector.Vector) float64

	// GradF returns the gradient of F at v as a dense vector.
	GradF(v vector.Vector) vector.Dense

	// FWeighted evaluates F at the inhomogeneous point v/w.
	FWeighted(v vector.Vector, w float64) float64

	// GradFWeighted returns the gradient of F at the inhomogeneous point v/w.
	GradFWeighted(v vector.Vector, w float64) vector.Dense

	// Validate reports whether the weighted point lies in the divergence's
	// domain. A nil return guarantees F and GradF are well-defined at p up
	// to isolated boundary components (which evaluate to non-finite values
	// and are skipped downstream).
	Validate(p vector.Weighted) error
}

// ErrInvalidInput indicates a point outside the domain of the selected
// divergence, or a non-positive weight.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidInput struct {
	Kind  Kind
	Index int
	Value float64
	cause error
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid input for %s: component %d = %g", e.Kind, e.Index, e.Value)
}

func (e *ErrInvalidInput) Unwrap() error { return e.cause }

// validateWeight rejects non-positive weights. Index -1 marks the weight
// rather than a vector component.
func validateWeight(kind Kind, p vector.Weighted) error {
	if p.Weight <= 0 {
		return &ErrInvalidInput{Kind: kind, Index: -1, Value: p.Weight}
	}
	return nil
}

// validateNonNegative rejects negative components.
func validateNonNegative(kind Kind, p vector.Weighted) error {
	if err := validateWeight(kind, p); err != nil {
		return err
	}
	var bad error
	p.Vec.NonZero(func(i int, v float64) bool {
		if v < 0 {
			bad = &ErrInvalidInput{Kind: kind, Index: i, Value: v}
			return false
		}
		return true
	})
	return bad
}
