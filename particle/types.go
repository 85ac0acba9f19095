// Package particle defines options, results and errors for the
// particle subpackage of github.com/katalvlaran/lvsis.
package particle

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for filtering.
var (
	// ErrParticles indicates Options.Particles < 1.
	ErrParticles = errors.New("particle: number of particles must be at least 1")
	// ErrWorkers indicates Options.Workers < 0.
	ErrWorkers = errors.New("particle: workers must be non-negative")
	// ErrHorizon indicates an empty observation sequence.
	ErrHorizon = errors.New("particle: at least one observation is required")
	// ErrObservation indicates a NaN or infinite observation.
	ErrObservation = errors.New("particle: observations must be finite")
	// ErrNilModel indicates a nil model.
	ErrNilModel = errors.New("particle: model is nil")
	// ErrResampleBelow indicates a resampling threshold outside [0, 1].
	ErrResampleBelow = errors.New("particle: ResampleBelow must be within [0, 1]")
	// ErrDegenerateEnsemble indicates that every particle's cumulative
	// log-weight is -Inf (or any is NaN/+Inf) at some step, so the
	// normalized weights do not exist. Match with errors.Is; the concrete
	// error is *DegenerateEnsembleError.
	ErrDegenerateEnsemble = errors.New("particle: degenerate ensemble")
)

// DegenerateEnsembleError reports the step at which normalization failed.
type DegenerateEnsembleError struct {
	Step    int     // time index t
	LogNorm float64 // the non-finite log-sum-exp of the cumulative log-weights
	Err     error   // underlying normalization error
}

func (e *DegenerateEnsembleError) Error() string {
	return fmt.Sprintf("particle: degenerate ensemble at t=%d (log-normalizer %v): %v", e.Step, e.LogNorm, e.Err)
}

// Is matches ErrDegenerateEnsemble.
func (e *DegenerateEnsembleError) Is(target error) bool {
	return target == ErrDegenerateEnsemble
}

// Unwrap exposes the underlying weights error.
func (e *DegenerateEnsembleError) Unwrap() error { return e.Err }

// Options configures Run.
//
// Fields:
//   - Particles     — ensemble size N.
//   - Workers       — goroutines propagating one step's particles; values ≤ 1
//     run inline. Results never depend on this value.
//   - Resampler     — optional extension point; nil (the default) never
//     resamples, so weights degenerate as plain SIS predicts.
//   - ResampleBelow — when Resampler is set, resample after a step whose
//     ESS falls below ResampleBelow·N.
type Options struct {
	Particles     int
	Workers       int
	Resampler     Resampler
	ResampleBelow float64
}

// DefaultOptions returns Options with Particles=10, Workers=1, no resampling.
func DefaultOptions() Options {
	return Options{
		Particles:     10,
		Workers:       1,
		ResampleBelow: 0.5,
	}
}

// Result holds the full filtering history.
//
// Fields:
//   - X          — T×N particle values; row t is the ensemble at time t.
//   - W          — T×N normalized weights; every row sums to 1.
//   - XHat       — weighted posterior means Σ_i W[t,i]·X[t,i].
//   - ESS        — effective sample size 1/Σ_i W[t,i]² per step.
//   - LogWeights — cumulative log-weights after the last step.
//   - Resampled  — steps after which the optional Resampler fired.
type Result struct {
	X          *mat.Dense
	W          *mat.Dense
	XHat       []float64
	ESS        []float64
	LogWeights []float64
	Resampled  []int
}

// Steps is the horizon T.
func (r *Result) Steps() int { return len(r.XHat) }

// Particles returns the ensemble values at step t (a view into X).
func (r *Result) Particles(t int) mat.Vector { return r.X.RowView(t) }

// Weights returns the normalized weights at step t (a view into W).
func (r *Result) Weights(t int) mat.Vector { return r.W.RowView(t) }
