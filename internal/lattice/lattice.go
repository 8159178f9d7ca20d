// Package lattice implements the permutohedral lattice kernel for fast
// approximate high-dimensional Gaussian filtering.
//
// The lattice embeds d-dimensional feature points into a sparse
// simplectic tiling of (d+1)-dimensional space. Filtering a set of
// per-point values then reduces to three near-linear passes: splatting
// values onto the enclosing simplex corners, blurring along the d+1
// lattice axes, and slicing interpolated results back out. See Adams,
// Baek, Davis: "Fast High-Dimensional Filtering Using the
// Permutohedral Lattice" (Eurographics 2010).
//
// This package performs no shape validation; callers (the public
// package at the module root) must guarantee consistent dimensions.
package lattice

// Neighbors holds the two vertices reachable from a vertex along one
// lattice axis: +(d+1) along the axis and -1 along all others, and the
// reverse. Indices are 1-based into the filter scratch buffers; the
// zero value means the neighbor is not part of the populated lattice
// and contributes nothing during blurring.
type Neighbors struct {
	N1, N2 int32
}

// Lattice holds the tables produced by Build and consumed by Compute.
//
// The zero value is a valid unbuilt lattice (d = n = m = 0, empty
// tables); Compute on it performs no work. Once built, a Lattice is
// immutable and safe for concurrent Compute calls.
type Lattice struct {
	dim      int // feature dimensionality d
	points   int // number of splatted points N
	vertices int // number of discovered lattice vertices M

	// offsets and weights hold, for each point, the d+1 simplex
	// corner references: a 1-based vertex index (matching the scratch
	// buffer layout used by Compute) and its barycentric weight.
	// Both are N*(d+1) long, point-major.
	offsets []int32
	weights []float32

	// neighbors holds the blur neighborhood, (d+1)*M long and
	// axis-major: entry j*M+i is vertex i's pair along axis j.
	neighbors []Neighbors
}

// Dim returns the feature dimensionality d.
func (l *Lattice) Dim() int { return l.dim }

// NumPoints returns the number of points N the lattice was built from.
func (l *Lattice) NumPoints() int { return l.points }

// NumVertices returns the number of discovered lattice vertices M.
func (l *Lattice) NumVertices() int { return l.vertices }

// Clone returns a deep copy of the lattice. The copy shares no storage
// with the original.
func (l *Lattice) Clone() Lattice {
	c := Lattice{
		dim:      l.dim,
		points:   l.points,
		vertices: l.vertices,
	}
	if l.offsets != nil {
		c.offsets = append([]int32(nil), l.offsets...)
	}
	if l.weights != nil {
		c.weights = append([]float32(nil), l.weights...)
	}
	if l.neighbors != nil {
		c.neighbors = append([]Neighbors(nil), l.neighbors...)
	}
	return c
}
