package permutohedral

import (
	"fmt"
)

// NewSpatial builds a lattice over positions scaled by invStdDev,
// giving a Gaussian kernel with standard deviation 1/invStdDev in
// position space. positions is point-major with dim coordinates per
// point.
func NewSpatial(positions []float32, dim int, invStdDev float32) (*Lattice, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: position dimension must be at least 1", ErrInvalidConfig)
	}
	features := make([]float32, len(positions))
	for i, p := range positions {
		features[i] = p * invStdDev
	}
	return New(&Config{Features: features, Dim: dim})
}

// NewBilateral builds a lattice over concatenated position and range
// features, the classic bilateral kernel: points interact when they
// are close both spatially and in range (e.g. color or amplitude).
//
// positions is point-major with posDim coordinates per point and
// ranges is point-major with rangeDim coordinates per point; both must
// describe the same number of points. The kernel's standard deviations
// are 1/invPosStdDev in position space and 1/invRangeStdDev in range
// space.
func NewBilateral(positions []float32, posDim int, ranges []float32, rangeDim int, invPosStdDev, invRangeStdDev float32) (*Lattice, error) {
	if posDim < 1 || rangeDim < 1 {
		return nil, fmt.Errorf("%w: feature dimensions must be at least 1", ErrInvalidConfig)
	}
	if len(positions)%posDim != 0 || len(ranges)%rangeDim != 0 {
		return nil, fmt.Errorf("%w: feature lengths not divisible by their dimensions",
			ErrInvalidConfig)
	}
	n := len(positions) / posDim
	if len(ranges)/rangeDim != n {
		return nil, fmt.Errorf("%w: %d position points vs %d range points",
			ErrInvalidConfig, n, len(ranges)/rangeDim)
	}

	dim := posDim + rangeDim
	features := make([]float32, n*dim)
	for i := 0; i < n; i++ {
		f := features[i*dim : (i+1)*dim]
		for j := 0; j < posDim; j++ {
			f[j] = positions[i*posDim+j] * invPosStdDev
		}
		for j := 0; j < rangeDim; j++ {
			f[posDim+j] = ranges[i*rangeDim+j] * invRangeStdDev
		}
	}
	return New(&Config{Features: features, Dim: dim})
}
