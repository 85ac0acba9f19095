package particle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/lvsis/particle"
	"github.com/katalvlaran/lvsis/randsrc"
)

// fixed returns the same uniform on every call.
type fixed float64

func (f fixed) Float64() float64 { return float64(f) }

func TestSystematic_Deterministic(t *testing.T) {
	w := []float64{0.1, 0.2, 0.3, 0.4}
	idx := make([]int, 4)

	// pointers at 0.125, 0.375, 0.625, 0.875
	particle.Systematic{}.Resample(fixed(0.5), w, idx)
	assert.Equal(t, []int{1, 2, 3, 3}, idx)

	particle.Systematic{}.Resample(fixed(0), []float64{0, 0, 1, 0}, idx)
	assert.Equal(t, []int{2, 2, 2, 2}, idx)
}

func TestMultinomial_Deterministic(t *testing.T) {
	idx := make([]int, 3)
	particle.Multinomial{}.Resample(fixed(0.55), []float64{0.5, 0.25, 0.25}, idx)
	assert.Equal(t, []int{1, 1, 1}, idx)
}

// TestResamplers_Frequencies compares selection counts to the weights.
func TestResamplers_Frequencies(t *testing.T) {
	const n, rounds = 4, 5000
	w := []float64{0.1, 0.2, 0.3, 0.4}
	for _, rs := range []particle.Resampler{particle.Systematic{}, particle.Multinomial{}} {
		r := randsrc.New(9)
		counts := make([]float64, n)
		idx := make([]int, n)
		for i := 0; i < rounds; i++ {
			rs.Resample(r, w, idx)
			for _, j := range idx {
				assert.True(t, j >= 0 && j < n)
				counts[j]++
			}
		}
		for j := range counts {
			assert.InDelta(t, w[j], counts[j]/(n*rounds), 0.02, "%T index %d", rs, j)
		}
	}
}
