package permutohedral

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-permutohedral/internal/hashtable"
	"github.com/tphakala/go-permutohedral/internal/lattice"
)

// Common errors returned by the package.
var (
	// ErrInvalidConfig indicates invalid construction parameters.
	ErrInvalidConfig = errors.New("invalid lattice configuration")

	// ErrShapeMismatch indicates value or range dimensions that do not
	// match the built lattice.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Config holds lattice construction parameters.
type Config struct {
	// Features holds the point-major feature vectors: point k occupies
	// Features[k*Dim : (k+1)*Dim]. The slice is read during New and
	// not retained.
	Features []float32

	// Dim is the feature dimensionality d. Must be at least 1.
	Dim int
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dim < 1 {
		return fmt.Errorf("%w: feature dimension must be at least 1", ErrInvalidConfig)
	}
	if len(c.Features)%c.Dim != 0 {
		return fmt.Errorf("%w: feature length %d not divisible by dimension %d",
			ErrInvalidConfig, len(c.Features), c.Dim)
	}
	return nil
}

// Range selects a contiguous half-open interval [Lo, Hi) of point
// indices. The zero value selects all points.
type Range struct {
	Lo, Hi int
}

// Lattice is a built permutohedral lattice. It is immutable and safe
// for concurrent filtering.
type Lattice struct {
	lat lattice.Lattice
}

// New builds a lattice from the configured feature vectors.
//
// Construction is the expensive step; the returned lattice can filter
// any number of value arrays without rebuilding. NaN or degenerate
// features are not detected and propagate into the result.
func New(cfg *Config) (*Lattice, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := len(cfg.Features) / cfg.Dim
	store := hashtable.New(cfg.Dim, n*(cfg.Dim+1))
	return &Lattice{lat: lattice.Build(cfg.Features, cfg.Dim, store)}, nil
}

// Dim returns the feature dimensionality the lattice was built with.
func (l *Lattice) Dim() int { return l.lat.Dim() }

// NumPoints returns the number of feature points.
func (l *Lattice) NumPoints() int { return l.lat.NumPoints() }

// NumVertices returns the number of discovered lattice vertices.
func (l *Lattice) NumVertices() int { return l.lat.NumVertices() }

// Clone returns a deep copy sharing no storage with the original.
func (l *Lattice) Clone() *Lattice {
	return &Lattice{lat: l.lat.Clone()}
}

// Filter applies the raw linear filter to values, one valueSize-long
// vector per point, and returns the filtered values in point order.
//
// The raw filter's gain varies slightly with the local lattice
// population; use [Lattice.FilterNormalized] for a true weighted
// average.
func (l *Lattice) Filter(values []float32, valueSize int) ([]float32, error) {
	return l.FilterRange(values, valueSize, Range{}, Range{})
}

// FilterRange is like [Lattice.Filter] but splats only the input
// points selected by in and slices only the output points selected by
// out. values must cover exactly the input range. Both ranges default
// to all points, allowing e.g. a subsampled input filtered onto the
// full output set.
func (l *Lattice) FilterRange(values []float32, valueSize int, in, out Range) ([]float32, error) {
	inR, inLen, err := l.resolveRange(in)
	if err != nil {
		return nil, err
	}
	outR, _, err := l.resolveRange(out)
	if err != nil {
		return nil, err
	}
	if valueSize < 1 {
		return nil, fmt.Errorf("%w: value size must be at least 1", ErrShapeMismatch)
	}
	if len(values) != inLen*valueSize {
		return nil, fmt.Errorf("%w: got %d values, want %d points x %d channels",
			ErrShapeMismatch, len(values), inLen, valueSize)
	}

	return l.lat.Compute(values, valueSize, inR, outR), nil
}

// FilterNormalized filters values and divides each output point by
// the filtered unit density, yielding a weighted average over the
// input points. A constant input channel is returned unchanged, and a
// single point round-trips exactly.
func (l *Lattice) FilterNormalized(values []float32, valueSize int) ([]float32, error) {
	if valueSize < 1 {
		return nil, fmt.Errorf("%w: value size must be at least 1", ErrShapeMismatch)
	}
	n := l.lat.NumPoints()
	if len(values) != n*valueSize {
		return nil, fmt.Errorf("%w: got %d values, want %d points x %d channels",
			ErrShapeMismatch, len(values), n, valueSize)
	}

	// Append a homogeneous all-ones channel; its filtered value is the
	// kernel mass seen by each point.
	ext := make([]float32, n*(valueSize+1))
	for i := 0; i < n; i++ {
		copy(ext[i*(valueSize+1):], values[i*valueSize:(i+1)*valueSize])
		ext[i*(valueSize+1)+valueSize] = 1
	}

	filtered := l.lat.Compute(ext, valueSize+1, lattice.Range{}, lattice.Range{})

	out := make([]float32, n*valueSize)
	for i := 0; i < n; i++ {
		norm := filtered[i*(valueSize+1)+valueSize]
		if norm <= 0 {
			continue
		}
		inv := 1 / norm
		for k := 0; k < valueSize; k++ {
			out[i*valueSize+k] = filtered[i*(valueSize+1)+k] * inv
		}
	}
	return out, nil
}

// resolveRange validates r against the lattice's point count and
// converts it to the kernel's range type.
func (l *Lattice) resolveRange(r Range) (lattice.Range, int, error) {
	n := l.lat.NumPoints()
	if r == (Range{}) {
		return lattice.Range{}, n, nil
	}
	if r.Lo < 0 || r.Hi < r.Lo || r.Hi > n {
		return lattice.Range{}, 0, fmt.Errorf("%w: range [%d, %d) outside [0, %d)",
			ErrShapeMismatch, r.Lo, r.Hi, n)
	}
	return lattice.Range{Lo: r.Lo, Hi: r.Hi}, r.Hi - r.Lo, nil
}
