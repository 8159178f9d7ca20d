// Package permutohedral provides fast approximate high-dimensional
// Gaussian filtering in pure Go.
//
// Given N points with d-dimensional feature vectors and per-point
// value vectors, the filter computes for each point a weighted average
// of all points' values, where the weight falls off as a Gaussian of
// the distance between feature vectors. A naive implementation costs
// O(N^2); the permutohedral lattice reduces it to near-linear time by
// splatting values onto a sparse simplectic lattice, blurring along
// the lattice axes, and slicing interpolated results back out.
//
// The algorithm follows Adams, Baek and Davis, "Fast High-Dimensional
// Filtering Using the Permutohedral Lattice" (Eurographics 2010), in
// the formulation popularized by Krähenbühl's fully-connected CRF
// inference.
//
// # Features
//
//   - Near-linear O(N*d^2) lattice construction and O(N*d) filtering
//   - Build once, filter many: one lattice serves any number of value
//     arrays with any channel count
//   - Normalized filtering for true weighted averages
//   - Asymmetric input/output point ranges sharing one lattice
//   - Bilateral and spatial feature helpers for common kernels
//   - SIMD-accelerated inner loops via github.com/tphakala/simd and
//     Gonum BLAS
//   - Pure Go implementation with no CGO dependencies
//
// # Quick Start
//
// Build a lattice from feature vectors, then filter values through it:
//
//	lat, err := permutohedral.New(&permutohedral.Config{
//	    Features: features, // n*dim floats, point-major
//	    Dim:      dim,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	smoothed, err := lat.FilterNormalized(values, valueSize)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// [Lattice.Filter] applies the raw linear filter; its per-point gain
// depends on the local lattice population, so most callers want
// [Lattice.FilterNormalized], which divides by the filtered unit
// density and returns a true weighted average (a constant input comes
// back unchanged).
//
// # Feature Helpers
//
// [NewSpatial] builds a lattice over scaled positions (a plain
// Gaussian kernel); [NewBilateral] concatenates position and range
// features (the bilateral kernel):
//
//	lat, err := permutohedral.NewBilateral(
//	    positions, 2, // (x, y) per point
//	    colors, 3,    // (r, g, b) per point
//	    1.0/spatialSigma, 1.0/rangeSigma,
//	)
//
// # Thread Safety
//
// A built [Lattice] is immutable. Any number of Filter, FilterRange
// and FilterNormalized calls may run concurrently on the same lattice
// without synchronization; each call owns its scratch buffers.
//
// # Attribution
//
// The lattice construction and splat/blur/slice pass are derived from
// the permutohedral lattice implementation in Philipp Krähenbühl's
// DenseCRF (BSD licensed), itself based on Adams et al. 2010.
package permutohedral
