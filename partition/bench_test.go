package partition_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/lvsis/partition"
	"github.com/katalvlaran/lvsis/randsrc"
)

// benchmarkEstimate runs one length with the given worker count.
func benchmarkEstimate(b *testing.B, T, draws, workers int) {
	opts := partition.DefaultOptions()
	opts.Draws = draws
	opts.Workers = workers
	root := randsrc.New(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := partition.EstimateLength(context.Background(), root, T, opts); err != nil {
			b.Fatalf("Estimate failed: %v", err)
		}
	}
}

// BenchmarkEstimate_T20_Serial is the longest default length on one worker.
func BenchmarkEstimate_T20_Serial(b *testing.B) { benchmarkEstimate(b, 20, 10000, 1) }

// BenchmarkEstimate_T20_Parallel uses every available CPU.
func BenchmarkEstimate_T20_Parallel(b *testing.B) { benchmarkEstimate(b, 20, 10000, 0) }

// BenchmarkEstimate_T8_Distinct includes the distinct-walk bookkeeping.
func BenchmarkEstimate_T8_Distinct(b *testing.B) { benchmarkEstimate(b, 8, 10000, 0) }
