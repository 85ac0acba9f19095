package partition_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvsis/partition"
	"github.com/katalvlaran/lvsis/randsrc"
)

// ExampleEstimate estimates Z_T for the two shortest non-trivial lengths,
// where every walk has the same weight and the estimate is exact.
//
// The distinct-observed count is reported next to it: for such small T a
// batch of 2000 draws sees every walk at least once.
func ExampleEstimate() {
	opts := partition.DefaultOptions()
	opts.Draws = 2000

	recs, err := partition.Estimate(context.Background(), randsrc.New(42), []int{3, 4}, opts)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	for _, r := range recs {
		fmt.Printf("T=%d Z=%.0f distinct=%d survival=%.2f\n", r.Length, r.ZHat, r.DistinctObserved, r.SurvivalRate())
	}
	// Output:
	// T=3 Z=12 distinct=12 survival=1.00
	// T=4 Z=36 distinct=36 survival=1.00
}
