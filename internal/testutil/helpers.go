// Package testutil provides reusable test helper functions for lattice
// filtering tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-permutohedral/internal/vecops"
)

// Default tolerances for filtering tests.
const (
	// WeightTolerance bounds the barycentric weight sum error.
	WeightTolerance = 1e-5

	// FilterTolerance bounds per-value filtering error in float32
	// pipelines.
	FilterTolerance = 1e-4
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float32, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertSumsTo verifies that the elements of s sum to want.
func AssertSumsTo(t *testing.T, s []float32, want, tolerance float64) bool {
	t.Helper()
	return assert.InDelta(t, want, float64(vecops.Sum(s)), tolerance,
		"sum = %f, want %f", vecops.Sum(s), want)
}

// AssertAllInDelta verifies that got matches want element-wise within
// tolerance.
func AssertAllInDelta(t *testing.T, want, got []float32, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, got, len(want)) {
		return false
	}
	for i := range want {
		if !assert.InDelta(t, want[i], got[i], tolerance,
			"mismatch at index %d: got %f, want %f", i, got[i], want[i]) {
			return false
		}
	}
	return true
}

// AssertAllNonNegative verifies that every element is >= -tolerance.
func AssertAllNonNegative(t *testing.T, s []float32, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if float64(v) < -tolerance {
			return assert.Fail(t, "negative value",
				"s[%d]=%f below -%e", i, v, tolerance)
		}
	}
	return true
}

// AssertBitIdentical verifies that got equals want bit for bit.
func AssertBitIdentical(t *testing.T, want, got []float32, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, got, len(want)) {
		return false
	}
	for i := range want {
		if math.Float32bits(want[i]) != math.Float32bits(got[i]) {
			return assert.Fail(t, "values differ",
				"index %d: got %x, want %x", i,
				math.Float32bits(got[i]), math.Float32bits(want[i]))
		}
	}
	return true
}
