package lattice

import (
	"math"

	"github.com/tphakala/go-permutohedral/internal/hashtable"
)

// Build constructs the lattice for n = len(features)/dim points.
// features is point-major: point k occupies features[k*dim:(k+1)*dim].
// store resolves vertex keys to dense indices; it is consumed during
// construction and must not be shared with another build.
//
// Preconditions: dim >= 1 and len(features) divisible by dim. NaN or
// degenerate features propagate through the arithmetic rather than
// being rejected.
//
// Cost is O(n*dim^2) for simplex localization plus O(m*dim) for
// neighbor discovery, where m is the number of discovered vertices.
func Build(features []float32, dim int, store hashtable.Store) Lattice {
	n := 0
	if dim > 0 {
		n = len(features) / dim
	}
	l := Lattice{
		dim:     dim,
		points:  n,
		offsets: make([]int32, n*(dim+1)),
		weights: make([]float32, n*(dim+1)),
	}

	// Diagonal part of the elevation matrix E (p.5 in Adams et al.
	// 2010), folded with the expected standard deviation of the blur.
	invStdDev := float32(math.Sqrt(elevationVariance)) * float32(dim+1)
	scaleFactor := make([]float32, dim)
	for i := range scaleFactor {
		scaleFactor[i] = invStdDev / float32(math.Sqrt(float64(i+2)*float64(i+1)))
	}

	// canonical[r*(dim+1)+i] is coordinate i of corner r of the
	// canonical simplex, fixed for the whole build.
	canonical := make([]int16, (dim+1)*(dim+1))
	for i := 0; i <= dim; i++ {
		for j := 0; j <= dim-i; j++ {
			canonical[i*(dim+1)+j] = int16(i)
		}
		for j := dim - i + 1; j <= dim; j++ {
			canonical[i*(dim+1)+j] = int16(i - (dim + 1))
		}
	}

	elevated := make([]float32, dim+1)
	rem0 := make([]float32, dim+1)
	rank := make([]int, dim+1)
	barycentric := make([]float32, dim+2)
	key := make([]int16, dim)

	downFactor := 1.0 / float32(dim+1)
	upFactor := float32(dim + 1)

	for k := 0; k < n; k++ {
		f := features[k*dim : (k+1)*dim]

		// Elevate onto the hyperplane sum(x)=0 via a cumulative-sum
		// construction of y = E*p.
		sm := float32(0)
		for j := dim; j > 0; j-- {
			cf := f[j-1] * scaleFactor[j-1]
			elevated[j] = sm - float32(j)*cf
			sm += cf
		}
		elevated[0] = sm

		// Round to the nearest 0-colored lattice point. sum records
		// how far off the sum(x)=0 plane the rounding landed.
		sum := 0
		for i := 0; i <= dim; i++ {
			rd := int(math.Round(float64(downFactor * elevated[i])))
			rem0[i] = float32(rd) * upFactor
			sum += rd
		}

		// rank[i] is the position of coordinate i in the descending
		// order of the residuals, selecting which of the d+1
		// sub-simplices of the cell the point falls in.
		for i := range rank {
			rank[i] = 0
		}
		for i := 0; i < dim; i++ {
			di := float64(elevated[i] - rem0[i])
			for j := i + 1; j <= dim; j++ {
				if di < float64(elevated[j]-rem0[j]) {
					rank[i]++
				} else {
					rank[j]++
				}
			}
		}

		// Bring points that rounded off the plane back onto it.
		for i := 0; i <= dim; i++ {
			rank[i] += sum
			if rank[i] < 0 {
				rank[i] += dim + 1
				rem0[i] += upFactor
			} else if rank[i] > dim {
				rank[i] -= dim + 1
				rem0[i] -= upFactor
			}
		}

		// Barycentric coordinates (p.10 in Adams et al. 2010): the
		// residuals, sorted by rank, differenced into d+2 slots with
		// the wrap-around slot folded back into slot 0.
		for i := range barycentric {
			barycentric[i] = 0
		}
		for i := 0; i <= dim; i++ {
			v := (elevated[i] - rem0[i]) * downFactor
			barycentric[dim-rank[i]] += v
			barycentric[dim-rank[i]+1] -= v
		}
		barycentric[0] += 1.0 + barycentric[dim+1]

		// Resolve each simplex corner to a vertex index. Indices are
		// stored 1-based so that 0 stays free as the blur sentinel.
		for remainder := 0; remainder <= dim; remainder++ {
			for i := 0; i < dim; i++ {
				key[i] = int16(rem0[i]) + canonical[remainder*(dim+1)+rank[i]]
			}
			l.offsets[k*(dim+1)+remainder] = store.Find(key, true) + 1
			l.weights[k*(dim+1)+remainder] = barycentric[remainder]
		}
	}

	l.vertices = store.Size()
	l.buildNeighbors(store)
	return l
}

// buildNeighbors fills the blur neighborhood table: for every vertex
// and axis, the two vertices offset by +-(d+1) along the axis and -+1
// along all others. Probes are lookup-only; vertices outside the
// populated lattice stay at the zero "no neighbor" value.
func (l *Lattice) buildNeighbors(store hashtable.Store) {
	dim, m := l.dim, l.vertices
	l.neighbors = make([]Neighbors, (dim+1)*m)

	n1 := make([]int16, dim)
	n2 := make([]int16, dim)

	for j := 0; j <= dim; j++ {
		for i := 0; i < m; i++ {
			key := store.Key(int32(i))
			for k := 0; k < dim; k++ {
				n1[k] = key[k] - 1
				n2[k] = key[k] + 1
			}
			// Axis dim is the implicit redundant coordinate; its
			// probe keys have no explicit entry to adjust.
			if j < dim {
				n1[j] = key[j] + int16(dim)
				n2[j] = key[j] - int16(dim)
			}

			l.neighbors[j*m+i] = Neighbors{
				N1: store.Find(n1, false) + 1,
				N2: store.Find(n2, false) + 1,
			}
		}
	}
}
