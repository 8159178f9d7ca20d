package lattice

import (
	"testing"

	"github.com/tphakala/go-permutohedral/internal/hashtable"
)

const (
	benchPoints    = 10000
	benchDim       = 5
	benchValueSize = 3
)

func BenchmarkBuild(b *testing.B) {
	features := randomFeatures(benchPoints, benchDim)

	b.ReportAllocs()
	for b.Loop() {
		_ = Build(features, benchDim, hashtable.New(benchDim, benchPoints*(benchDim+1)))
	}
}

func BenchmarkCompute(b *testing.B) {
	features := randomFeatures(benchPoints, benchDim)
	values := randomFeatures(benchPoints*benchValueSize, 1)
	l := buildTestLattice(features, benchDim)

	b.ReportAllocs()
	for b.Loop() {
		_ = l.Compute(values, benchValueSize, Range{}, Range{})
	}
}
