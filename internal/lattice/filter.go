package lattice

import (
	"math"

	"github.com/tphakala/go-permutohedral/internal/vecops"
)

// Range selects a contiguous half-open interval [Lo, Hi) of point
// indices. The zero value selects all points.
type Range struct {
	Lo, Hi int
}

// resolve returns the concrete bounds for a lattice of n points.
func (r Range) resolve(n int) (lo, hi int) {
	if r == (Range{}) {
		return 0, n
	}
	return r.Lo, r.Hi
}

// Compute filters the per-point values through the lattice and returns
// the result, one valueSize-long vector per output point. in is
// point-major and covers exactly the points selected by inRange;
// the result covers the points selected by outRange. Both ranges
// default to all points.
//
// The lattice tables are read-only during the call; concurrent Compute
// calls on the same built lattice are safe.
//
// Preconditions (not validated here): the lattice is built,
// len(in) == inRange length * valueSize, and both ranges lie within
// [0, NumPoints).
func (l *Lattice) Compute(in []float32, valueSize int, inRange, outRange Range) []float32 {
	inLo, inHi := inRange.resolve(l.points)
	outLo, outHi := outRange.resolve(l.points)
	outLen := outHi - outLo
	if outLen < 0 {
		outLen = 0
	}
	out := make([]float32, outLen*valueSize)
	if valueSize <= 0 || outLen == 0 {
		return out
	}

	d, m := l.dim, l.vertices

	// Two scratch buffers over m+2 vertex slots. Slot 0 is the
	// sentinel read for absent neighbors and stays zero; real vertices
	// occupy slots 1..m.
	values := make([]float32, (m+sentinelSlots)*valueSize)
	newValues := make([]float32, (m+sentinelSlots)*valueSize)

	// Splat: scatter each input point's value onto its d+1 simplex
	// corners, weighted by the barycentric coordinates.
	for i := 0; i < inHi-inLo; i++ {
		val := in[i*valueSize : (i+1)*valueSize]
		base := (inLo + i) * (d + 1)
		for j := 0; j <= d; j++ {
			o := int(l.offsets[base+j])
			vecops.Axpy(l.weights[base+j], val, values[o*valueSize:(o+1)*valueSize])
		}
	}

	// Blur: one [0.5, 1, 0.5] pass per lattice axis, each reading the
	// previous pass's buffer. The swap makes newValues current.
	for j := 0; j <= d; j++ {
		for i := 0; i < m; i++ {
			nb := l.neighbors[j*m+i]
			old := values[(i+1)*valueSize : (i+2)*valueSize]
			dst := newValues[(i+1)*valueSize : (i+2)*valueSize]
			copy(dst, old)
			n1 := values[int(nb.N1)*valueSize : (int(nb.N1)+1)*valueSize]
			n2 := values[int(nb.N2)*valueSize : (int(nb.N2)+1)*valueSize]
			vecops.Axpy(blurNeighborWeight, n1, dst)
			vecops.Axpy(blurNeighborWeight, n2, dst)
		}
		values, newValues = newValues, values
	}

	// Slice: gather the blurred vertex values back to the output
	// points with the same corner/weight correspondence, then apply
	// the blur gain correction.
	for i := 0; i < outLen; i++ {
		dst := out[i*valueSize : (i+1)*valueSize]
		base := (outLo + i) * (d + 1)
		for j := 0; j <= d; j++ {
			o := int(l.offsets[base+j])
			vecops.Axpy(l.weights[base+j], values[o*valueSize:(o+1)*valueSize], dst)
		}
	}
	alpha := float32(1.0 / (1.0 + math.Pow(2, -float64(d))))
	vecops.Scale(out, out, alpha)

	return out
}
