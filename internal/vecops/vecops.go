// Package vecops provides float32 vector primitives for the lattice
// hot paths.
//
// Element-wise operations delegate to github.com/tphakala/simd, which
// dispatches to AVX2/SSE when available. The accumulate primitive uses
// Gonum's BLAS Saxpy, which handles SIMD dispatch internally.
package vecops

import (
	"github.com/tphakala/simd/f32"
	"gonum.org/v1/gonum/blas/gonum"
)

var engine = gonum.Implementation{}

// Axpy computes y[i] += alpha * x[i].
// x and y must have the same length and must not overlap.
func Axpy(alpha float32, x, y []float32) {
	engine.Saxpy(len(x), alpha, x, 1, y, 1)
}

// Scale computes dst[i] = a[i] * s. dst and a may be the same slice.
func Scale(dst, a []float32, s float32) {
	f32.Scale(dst, a, s)
}

// Sum returns the sum of all elements.
func Sum(a []float32) float32 {
	return f32.Sum(a)
}

// Dot computes the dot product of a and b without bounds checking.
// Use only when both slices are guaranteed to have equal length.
func Dot(a, b []float32) float32 {
	return f32.DotProductUnsafe(a, b)
}
