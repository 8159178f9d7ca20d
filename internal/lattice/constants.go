package lattice

// Elevation constants
const (
	// elevationVariance is the variance term of the standard-deviation
	// normalizing scale (p.6 in Adams et al. 2010): the elevation is
	// scaled by sqrt(2/3)*(d+1) so that a unit-variance blur on the
	// lattice corresponds to a unit-variance Gaussian in feature space.
	elevationVariance = 2.0 / 3.0
)

// Blur constants
const (
	// blurNeighborWeight is the contribution of each of the two axis
	// neighbors in one blur pass, giving the [0.5, 1, 0.5] kernel.
	blurNeighborWeight = 0.5

	// sentinelSlots is the number of scratch-buffer slots reserved for
	// absent neighbors during blurring.
	sentinelSlots = 2
)
