package permutohedral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// variance returns the sample variance of s.
func variance(s []float32) float64 {
	if len(s) == 0 {
		return 0
	}
	var mean float64
	for _, v := range s {
		mean += float64(v)
	}
	mean /= float64(len(s))

	var sum float64
	for _, v := range s {
		d := float64(v) - mean
		sum += d * d
	}
	return sum / float64(len(s))
}

func TestNewSpatial_InvalidDim(t *testing.T) {
	lat, err := NewSpatial([]float32{1, 2}, 0, 1)
	assert.Nil(t, lat)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewSpatial_SmoothsNoise(t *testing.T) {
	// Gaussian averaging of independent noise must reduce variance.
	const n = 200
	positions := make([]float32, n)
	for i := range positions {
		positions[i] = float32(i)
	}
	noise := randomSlice(n, 1, testSeed)

	const sigma = 5.0
	lat, err := NewSpatial(positions, 1, 1/sigma)
	require.NoError(t, err)

	out, err := lat.FilterNormalized(noise, 1)
	require.NoError(t, err)

	assert.Less(t, variance(out), 0.5*variance(noise))
}

func TestNewBilateral_Validation(t *testing.T) {
	tests := []struct {
		name      string
		positions []float32
		posDim    int
		ranges    []float32
		rangeDim  int
	}{
		{"zero_pos_dim", []float32{1}, 0, []float32{1}, 1},
		{"zero_range_dim", []float32{1}, 1, []float32{1}, 0},
		{"pos_not_divisible", []float32{1, 2, 3}, 2, []float32{1}, 1},
		{"range_not_divisible", []float32{1, 2}, 1, []float32{1, 2, 3}, 2},
		{"point_count_mismatch", []float32{1, 2}, 1, []float32{1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, err := NewBilateral(tt.positions, tt.posDim, tt.ranges, tt.rangeDim, 1, 1)
			assert.Nil(t, lat)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNewBilateral_PreservesEdges(t *testing.T) {
	// A step signal filtered bilaterally (range features far apart
	// across the step) keeps its edge; the purely spatial filter
	// smears it.
	const n = 40
	positions := make([]float32, n)
	signal := make([]float32, n)
	for i := range positions {
		positions[i] = float32(i)
		if i >= n/2 {
			signal[i] = 1
		}
	}

	const (
		spatialSigma = 4.0
		rangeSigma   = 0.1
	)

	spatial, err := NewSpatial(positions, 1, 1/spatialSigma)
	require.NoError(t, err)
	smeared, err := spatial.FilterNormalized(signal, 1)
	require.NoError(t, err)

	bilateral, err := NewBilateral(positions, 1, signal, 1, 1/spatialSigma, 1/rangeSigma)
	require.NoError(t, err)
	preserved, err := bilateral.FilterNormalized(signal, 1)
	require.NoError(t, err)

	var maxSpatialShift, maxBilateralShift float64
	for i := range signal {
		maxSpatialShift = math.Max(maxSpatialShift, math.Abs(float64(smeared[i]-signal[i])))
		maxBilateralShift = math.Max(maxBilateralShift, math.Abs(float64(preserved[i]-signal[i])))
	}

	assert.Greater(t, maxSpatialShift, 0.25, "spatial filter should smear the step")
	assert.Less(t, maxBilateralShift, 0.15, "bilateral filter should keep the step")
}
