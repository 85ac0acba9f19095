package lattice_test

import (
	"testing"

	"github.com/katalvlaran/lvsis/lattice"
	"github.com/katalvlaran/lvsis/randsrc"
)

// benchmarkGrow draws walks of length T from a single stream.
func benchmarkGrow(b *testing.B, T int, opts lattice.Options) {
	r := randsrc.New(1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := lattice.Grow(r, T, opts); err != nil {
			b.Fatalf("Grow failed: %v", err)
		}
	}
}

// BenchmarkGrow_T20 matches the longest length of the default run.
func BenchmarkGrow_T20(b *testing.B) { benchmarkGrow(b, 20, lattice.DefaultOptions()) }

// BenchmarkGrow_T200 stresses the occupancy set on long walks.
func BenchmarkGrow_T200(b *testing.B) { benchmarkGrow(b, 200, lattice.DefaultOptions()) }

// BenchmarkGrow_Conn8_T50 measures the eight-neighbor lattice.
func BenchmarkGrow_Conn8_T50(b *testing.B) {
	benchmarkGrow(b, 50, lattice.Options{Connectivity: lattice.Conn8})
}
