package vector

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Vector is the read-only capability interface shared by dense and sparse
// representations. Implementations must be safe for concurrent reads.
type Vector interface {
	// Dim returns the dimensionality of the vector.
	Dim() int

	// At returns the i-th component. i must be in [0, Dim()).
	At(i int) float64

	// NonZero calls fn for each non-zero component in index order.
	// Iteration stops early if fn returns false.
	NonZero(fn func(i int, v float64) bool)
}

// Dense is a dense vector backed by a plain float64 slice.
type Dense []float64

// Dim returns the dimensionality of the vector.
func (d Dense) Dim() int { return len(d) }

// At returns the i-th component.
func (d Dense) At(i int) float64 { return d[i] }

// NonZero calls fn for each non-zero component in index order.
func (d Dense) NonZero(fn func(i int, v float64) bool) {
	for i, v := range d {
		if v == 0 {
			continue
		}
		if !fn(i, v) {
			return
		}
	}
}

// Sparse is a sparse vector storing only non-zero components as sorted
// (index, value) pairs.
type Sparse struct {
	dim int
	idx []int
	val []float64
}

// NewSparse creates a sparse vector of the given dimensionality from parallel
// index/value slices. Indices need not be sorted; they must be unique and in
// [0, dim).
func NewSparse(dim int, indices []int, values []float64) (Sparse, error) {
	if len(indices) != len(values) {
		return Sparse{}, fmt.Errorf("vector: %d indices but %d values", len(indices), len(values))
	}

	idx := make([]int, len(indices))
	copy(idx, indices)
	val := make([]float64, len(values))
	copy(val, values)

	sort.Sort(&sparseSorter{idx: idx, val: val})

	for i, j := range idx {
		if j < 0 || j >= dim {
			return Sparse{}, fmt.Errorf("vector: index %d out of range [0, %d)", j, dim)
		}
		if i > 0 && idx[i-1] == j {
			return Sparse{}, fmt.Errorf("vector: duplicate index %d", j)
		}
	}

	return Sparse{dim: dim, idx: idx, val: val}, nil
}

type sparseSorter struct {
	idx []int
	val []float64
}

func (s *sparseSorter) Len() int           { return len(s.idx) }
func (s *sparseSorter) Less(i, j int) bool { return s.idx[i] < s.idx[j] }
func (s *sparseSorter) Swap(i, j int) {
	s.idx[i], s.idx[j] = s.idx[j], s.idx[i]
	s.val[i], s.val[j] = s.val[j], s.val[i]
}

// Dim returns the dimensionality of the vector.
func (s Sparse) Dim() int { return s.dim }

// At returns the i-th component, zero for unstored indices.
func (s Sparse) At(i int) float64 {
	j := sort.SearchInts(s.idx, i)
	if j < len(s.idx) && s.idx[j] == i {
		return s.val[j]
	}
	return 0
}

// NNZ returns the number of stored non-zero components.
func (s Sparse) NNZ() int { return len(s.idx) }

// NonZero calls fn for each stored non-zero component in index order.
func (s Sparse) NonZero(fn func(i int, v float64) bool) {
	for j, i := range s.idx {
		if s.val[j] == 0 {
			continue
		}
		if !fn(i, s.val[j]) {
			return
		}
	}
}

// Dot returns the dot product of a and b. Both vectors must have the same
// dimensionality (caller's responsibility). Dense pairs use the gonum kernel;
// mixed and sparse pairs iterate the non-zeros of the sparser operand.
func Dot(a, b Vector) float64 {
	da, aDense := a.(Dense)
	db, bDense := b.(Dense)
	if aDense && bDense {
		return floats.Dot(da, db)
	}

	// Iterate the sparse side against random access on the other.
	if aDense && !bDense {
		a, b = b, a
	}

	var sum float64
	a.NonZero(func(i int, v float64) bool {
		sum += v * b.At(i)
		return true
	})
	return sum
}

// DotPrefix returns the dot product of v against the dense prefix d.
// Components of v at indices >= len(d) are ignored. This is used for duals
// that live in a lower-dimensional space than the points (logistic loss).
func DotPrefix(v Vector, d Dense) float64 {
	if dv, ok := v.(Dense); ok && len(dv) == len(d) {
		return floats.Dot(dv, d)
	}

	n := len(d)
	var sum float64
	v.NonZero(func(i int, x float64) bool {
		if i < n {
			sum += x * d[i]
		}
		return true
	})
	return sum
}

// AddScaled adds alpha*v into the dense accumulator dst. dst must have
// dimensionality >= v.Dim().
func AddScaled(dst Dense, alpha float64, v Vector) {
	if dv, ok := v.(Dense); ok {
		floats.AddScaled(dst, alpha, dv)
		return
	}
	v.NonZero(func(i int, x float64) bool {
		dst[i] += alpha * x
		return true
	})
}

// DenseCopy returns a dense copy of v.
func DenseCopy(v Vector) Dense {
	if dv, ok := v.(Dense); ok {
		out := make(Dense, len(dv))
		copy(out, dv)
		return out
	}
	out := make(Dense, v.Dim())
	v.NonZero(func(i int, x float64) bool {
		out[i] = x
		return true
	})
	return out
}

// Equal reports whether a and b have the same dimensionality and identical
// components.
func Equal(a, b Vector) bool {
	if a.Dim() != b.Dim() {
		return false
	}
	for i := 0; i < a.Dim(); i++ {
		if a.At(i) != b.At(i) {
			return false
		}
	}
	return true
}

// Sum returns the sum of all components of v.
func Sum(v Vector) float64 {
	if dv, ok := v.(Dense); ok {
		return floats.Sum(dv)
	}
	var sum float64
	v.NonZero(func(_ int, x float64) bool {
		sum += x
		return true
	})
	return sum
}
