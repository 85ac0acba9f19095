package particle

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Uniform draws from [0, 1); *randsrc.Stream satisfies it.
type Uniform interface {
	Float64() float64
}

// Resampler selects ancestor indices from normalized weights.
// Resample fills idx (len(idx) == len(w)) with indices in [0, len(w)).
type Resampler interface {
	Resample(r Uniform, w []float64, idx []int)
}

// Systematic resampling: one uniform offset, N evenly spaced pointers.
// Pointer u selects the j with cum[j−1] ≤ u < cum[j], so zero-weight
// particles are never chosen.
// Complexity: O(N).
type Systematic struct{}

// Resample implements Resampler.
func (Systematic) Resample(r Uniform, w []float64, idx []int) {
	n := len(w)
	cum := floats.CumSum(make([]float64, n), w)
	step := 1 / float64(n)
	u := r.Float64() * step
	j := 0
	for i := 0; i < n; i++ {
		for j < n-1 && u >= cum[j] {
			j++
		}
		idx[i] = j
		u += step
	}
}

// Multinomial resampling: N independent draws from the weights.
// Complexity: O(N log N).
type Multinomial struct{}

// Resample implements Resampler.
func (Multinomial) Resample(r Uniform, w []float64, idx []int) {
	n := len(w)
	cum := floats.CumSum(make([]float64, n), w)
	for i := 0; i < n; i++ {
		u := r.Float64()
		j := sort.Search(n, func(k int) bool { return cum[k] > u })
		idx[i] = min(j, n-1)
	}
}
