package weights_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvsis/weights"
)

// TestLogSumExp_Stable verifies that very large and very small log-weights
// neither overflow nor underflow.
func TestLogSumExp_Stable(t *testing.T) {
	cases := []struct {
		name string
		in   []float64
		want float64
	}{
		{"Large", []float64{1000, 1000}, 1000 + math.Ln2},
		{"Small", []float64{-1000, -1000}, -1000 + math.Ln2},
		{"Mixed", []float64{0, math.Inf(-1)}, 0},
		{"Single", []float64{3.5}, 3.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, weights.LogSumExp(tc.in), 1e-12)
		})
	}

	assert.True(t, math.IsInf(weights.LogSumExp(nil), -1), "empty sum is -Inf")
	assert.True(t, math.IsInf(weights.LogSumExp([]float64{math.Inf(-1), math.Inf(-1)}), -1))
}

// TestLogMeanExp checks the log of a mean that includes implicit zeros.
func TestLogMeanExp(t *testing.T) {
	got := weights.LogMeanExp([]float64{math.Log(12), math.Log(12)}, 4)
	assert.InDelta(t, math.Log(6), got, 1e-12, "two 12s over four items average to 6")
	assert.True(t, math.IsNaN(weights.LogMeanExp([]float64{1}, 0)))
}

// TestNormalize_SumsToOne verifies Σw = 1 for a spread of log-weight scales.
func TestNormalize_SumsToOne(t *testing.T) {
	inputs := [][]float64{
		{0},
		{-1e3, -1e3 + 1, -1e3 + 2},
		{700, 710, 720, -5},
		{math.Inf(-1), 0, 1},
	}
	for _, logw := range inputs {
		w := make([]float64, len(logw))
		lse, err := weights.Normalize(w, logw)
		require.NoError(t, err)
		assert.False(t, math.IsInf(lse, 0))
		assert.InDelta(t, 1.0, floats.Sum(w), 1e-9, "weights %v", w)
	}
}

// TestNormalize_Errors covers the degenerate inputs.
func TestNormalize_Errors(t *testing.T) {
	_, err := weights.Normalize(nil, nil)
	assert.ErrorIs(t, err, weights.ErrEmpty)

	_, err = weights.Normalize(make([]float64, 1), []float64{1, 2})
	assert.ErrorIs(t, err, weights.ErrLength)

	dst := []float64{7, 7}
	_, err = weights.Normalize(dst, []float64{math.Inf(-1), math.Inf(-1)})
	assert.ErrorIs(t, err, weights.ErrNonFinite)
	assert.Equal(t, []float64{7, 7}, dst, "dst untouched on error")

	_, err = weights.Normalize(dst, []float64{math.NaN(), 0})
	assert.ErrorIs(t, err, weights.ErrNonFinite)
}

// TestESS covers the two extremes and the empty case.
func TestESS(t *testing.T) {
	assert.InDelta(t, 4.0, weights.ESS([]float64{0.25, 0.25, 0.25, 0.25}), 1e-12)
	assert.InDelta(t, 1.0, weights.ESS([]float64{0, 1, 0}), 1e-12)
	assert.Equal(t, 0.0, weights.ESS([]float64{0, 0}))
}
