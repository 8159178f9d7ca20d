package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-permutohedral/internal/testutil"
)

func TestCompute_SinglePointChannelsShareGain(t *testing.T) {
	// A lone point's output is its own value times a fixed gain; every
	// channel must see the same gain.
	const dim = 2
	l := buildTestLattice([]float32{0.3, -0.7}, dim)

	in := []float32{1.0, 2.0, -4.0}
	out := l.Compute(in, len(in), Range{}, Range{})
	require.Len(t, out, len(in))
	testutil.AssertNoNaNOrInf(t, out)

	gain := out[0] / in[0]
	assert.Greater(t, gain, float32(0.2))
	assert.Less(t, gain, float32(2.0))
	for k := 1; k < len(in); k++ {
		assert.InDelta(t, float64(gain), float64(out[k]/in[k]), testutil.FilterTolerance,
			"channel %d gain differs", k)
	}
}

func TestCompute_TwoCloseFeatures(t *testing.T) {
	// Two nearby d=1 points exchange most of their mass, but each
	// output stays biased toward its own input.
	l := buildTestLattice([]float32{0.0, 0.1}, 1)

	out := l.Compute([]float32{1.0, 0.0}, 1, Range{}, Range{})
	require.Len(t, out, 2)

	assert.Greater(t, out[0], out[1])
	assert.Greater(t, out[1], float32(0))
}

func TestCompute_Linearity(t *testing.T) {
	const dim = 3
	const valueSize = 2
	features := randomFeatures(40, dim)
	l := buildTestLattice(features, dim)

	rawIn := randomFeatures(40*valueSize, 1)
	scaled := make([]float32, len(rawIn))
	const factor = 2.5
	for i, v := range rawIn {
		scaled[i] = factor * v
	}

	outRaw := l.Compute(rawIn, valueSize, Range{}, Range{})
	outScaled := l.Compute(scaled, valueSize, Range{}, Range{})

	for i := range outRaw {
		assert.InDelta(t, float64(factor*outRaw[i]), float64(outScaled[i]),
			testutil.FilterTolerance, "index %d", i)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	const dim = 2
	const valueSize = 3
	features := randomFeatures(120, dim)
	values := randomFeatures(120*valueSize, 1)

	a := buildTestLattice(features, dim)
	b := buildTestLattice(features, dim)

	outA := a.Compute(values, valueSize, Range{}, Range{})
	outB := b.Compute(values, valueSize, Range{}, Range{})

	testutil.AssertBitIdentical(t, outA, outB)
}

func TestCompute_OutputRangeSlicing(t *testing.T) {
	// Restricting the output range must reproduce the corresponding
	// slice of the full-range result exactly: each output point is
	// gathered independently from the same blurred lattice.
	const dim = 2
	const valueSize = 2
	const n = 50
	features := randomFeatures(n, dim)
	values := randomFeatures(n*valueSize, 1)
	l := buildTestLattice(features, dim)

	full := l.Compute(values, valueSize, Range{}, Range{})

	sub := Range{Lo: 10, Hi: 25}
	partial := l.Compute(values, valueSize, Range{}, sub)

	testutil.AssertBitIdentical(t, full[sub.Lo*valueSize:sub.Hi*valueSize], partial)
}

func TestCompute_InputRangeMatchesZeroPadding(t *testing.T) {
	// Splatting a sub-range equals splatting the full range with the
	// out-of-range values zeroed.
	const dim = 1
	const n = 6
	features := randomFeatures(n, dim)
	l := buildTestLattice(features, dim)

	values := []float32{1, 2, 3, 4, 5, 6}
	in := Range{Lo: 2, Hi: 5}

	padded := make([]float32, n)
	copy(padded[in.Lo:in.Hi], values[in.Lo:in.Hi])

	fromRange := l.Compute(values[in.Lo:in.Hi], 1, in, Range{})
	fromPadded := l.Compute(padded, 1, Range{}, Range{})

	testutil.AssertAllInDelta(t, fromPadded, fromRange, testutil.FilterTolerance)
}

func TestCompute_EmptyWork(t *testing.T) {
	const dim = 2
	l := buildTestLattice(randomFeatures(10, dim), dim)

	tests := []struct {
		name      string
		valueSize int
		in        Range
		out       Range
		wantLen   int
	}{
		{"empty_output_range", 1, Range{}, Range{Lo: 3, Hi: 3}, 0},
		{"zero_value_size", 0, Range{}, Range{}, 0},
		{"single_output_point", 1, Range{Lo: 4, Hi: 4}, Range{Lo: 0, Hi: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in []float32
			if tt.valueSize > 0 {
				lo, hi := tt.in.resolve(l.NumPoints())
				in = make([]float32, (hi-lo)*tt.valueSize)
			}
			out := l.Compute(in, tt.valueSize, tt.in, tt.out)
			assert.Len(t, out, tt.wantLen)
		})
	}
}

func TestCompute_UnbuiltLattice(t *testing.T) {
	var l Lattice
	out := l.Compute(nil, 1, Range{}, Range{})
	assert.Empty(t, out)
}

func TestCompute_MassRoughlyConserved(t *testing.T) {
	// The alpha correction compensates the blur gain; total output
	// mass stays within a modest factor of the input mass.
	const dim = 2
	const n = 200
	l := buildTestLattice(randomFeatures(n, dim), dim)

	values := make([]float32, n)
	for i := range values {
		values[i] = 1
	}
	out := l.Compute(values, 1, Range{}, Range{})

	var total float64
	for _, v := range out {
		total += float64(v)
	}
	assert.Greater(t, total, float64(n)*0.3)
	assert.Less(t, total, float64(n)*3.0)
}
