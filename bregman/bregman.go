// Package bregman derives a pointwise distance from a convex potential:
//
//	D(x, c) = F(x) − F(c) − ⟨x − c, gradF(c)⟩
//
// which is non-negative for convex F and zero at x == c. Centers cache their
// gradient-space image (the dual) so that repeated distance evaluations
// against many points never recompute gradF.
package bregman

import (
	"github.com/hupe1980/breggo/divergence"
	"github.com/hupe1980/breggo/vector"
)

// Center is a cluster center: a weighted point plus its cached dual
// representation. The dual is a derived field recomputed on every mutation,
// never lazily.
type Center struct {
	point vector.Weighted
	dual  vector.Dense
	// fDual caches F(c) − ⟨c, gradF(c)⟩ at the inhomogeneous center c, the
	// center-only part of the distance expansion.
	fDual float64
}

// NewCenter creates a center at the given weighted point and computes its
// dual under div.
func NewCenter(div divergence.Divergence, p vector.Weighted) Center {
	c := Center{}
	c.set(div, p)
	return c
}

func (c *Center) set(div divergence.Divergence, p vector.Weighted) {
	g := div.GradFWeighted(p.Vec, p.Weight)
	c.point = p
	c.dual = g
	c.fDual = div.FWeighted(p.Vec, p.Weight) - vector.DotPrefix(p.Vec, g)/p.Weight
}

// SetPoint moves the center to p and recomputes the cached dual.
func (c *Center) SetPoint(div divergence.Divergence, p vector.Weighted) {
	c.set(div, p)
}

// Point returns the center's weighted point.
func (c Center) Point() vector.Weighted { return c.point }

// Dual returns the cached gradient-space image of the center.
func (c Center) Dual() vector.Dense { return c.dual }

// Inhomogeneous materializes the center's coordinates.
func (c Center) Inhomogeneous() vector.Dense { return c.point.Inhomogeneous() }

// Distance returns the Bregman distance from the weighted point x to the
// center under div, using the center's cached dual.
func Distance(div divergence.Divergence, x vector.Weighted, c Center) float64 {
	fx := div.FWeighted(x.Vec, x.Weight)
	return DistanceWithF(fx, x, c)
}

// DistanceWithF is Distance with F(x) already evaluated; fx is constant
// across centers, so assignment loops compute it once per point.
func DistanceWithF(fx float64, x vector.Weighted, c Center) float64 {
	return fx - c.fDual - vector.DotPrefix(x.Vec, c.dual)/x.Weight
}
