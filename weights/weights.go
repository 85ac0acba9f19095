package weights

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmpty indicates a weight vector with no entries.
	ErrEmpty = errors.New("weights: weight vector must be non-empty")
	// ErrLength indicates dst and src lengths differ.
	ErrLength = errors.New("weights: length mismatch")
	// ErrNonFinite indicates the log-normalizer is -Inf, +Inf or NaN, so no
	// normalized weights exist.
	ErrNonFinite = errors.New("weights: log-normalizer is not finite")
)

// LogSumExp returns log(Σ exp(logw[i])) without overflow or underflow.
// An empty vector yields -Inf (the log of an empty sum).
// Entries equal to -Inf contribute nothing.
//
// Complexity: O(n).
func LogSumExp(logw []float64) float64 {
	if len(logw) == 0 {
		return math.Inf(-1)
	}
	return floats.LogSumExp(logw)
}

// LogMeanExp returns log((1/n) Σ exp(logw[i])), i.e. the log of the mean of
// the exponentiated values taken over n items. n may exceed len(logw) when
// the missing items are known zeros (log-weight -Inf).
//
// Complexity: O(len(logw)).
func LogMeanExp(logw []float64, n int) float64 {
	if n <= 0 {
		return math.NaN()
	}
	return LogSumExp(logw) - math.Log(float64(n))
}

// Normalize writes exp(logw[i] - LogSumExp(logw)) into dst and returns the
// log-normalizer. The normalized weights are recomputed from the full
// log-weight vector on every call, so they always sum to 1 within rounding.
//
// Errors:
//   - ErrEmpty when logw is empty.
//   - ErrLength when len(dst) != len(logw).
//   - ErrNonFinite when the log-normalizer is not finite (all entries -Inf,
//     any entry +Inf or NaN). dst is left untouched in that case.
//
// Complexity: O(n).
func Normalize(dst, logw []float64) (float64, error) {
	if len(logw) == 0 {
		return math.NaN(), ErrEmpty
	}
	if len(dst) != len(logw) {
		return math.NaN(), ErrLength
	}
	lse := LogSumExp(logw)
	if math.IsInf(lse, 0) || math.IsNaN(lse) {
		return lse, ErrNonFinite
	}
	for i, l := range logw {
		dst[i] = math.Exp(l - lse)
	}
	return lse, nil
}

// ESS returns the effective sample size 1/Σ w[i]² of normalized weights.
// It equals len(w) for uniform weights and 1 when a single entry carries
// all the mass. An all-zero vector yields 0.
//
// Complexity: O(n).
func ESS(w []float64) float64 {
	ss := floats.Dot(w, w)
	if ss == 0 {
		return 0
	}
	return 1 / ss
}
