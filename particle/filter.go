package particle

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvsis/randsrc"
	"github.com/katalvlaran/lvsis/volatility"
	"github.com/katalvlaran/lvsis/weights"
)

// Stream identifiers under the root stream passed to Run.
const (
	particleStream uint64 = iota + 1
	resampleStream
)

// Run filters observations with N particles by Sequential Importance
// Sampling, using the transition prior as proposal (bootstrap filter).
//
// Algorithm, for every particle i:
//
//	t = 0: x_0^i ~ initial distribution,     ℓ_0^i = log p(y_0 | x_0^i)
//	t ≥ 1: x_t^i = φ·x_{t−1}^i + Normal(0,σ), ℓ_t^i = ℓ_{t−1}^i + log p(y_t | x_t^i)
//
// then, every t, the weights are normalized afresh from the full cumulative
// vector, w_t^i = exp(ℓ_t^i − logSumExp(ℓ_t)), and x̂_t = Σ_i w_t^i·x_t^i.
// Log-weights are never reset: without a Resampler the mass concentrates on
// fewer particles as t grows, which the ESS history makes visible.
//
// Particle i consumes only root.Derive(1, i), so results are identical for any
// opts.Workers. Step t is complete (all particles propagated and weighted)
// before normalization and before step t+1 begins.
//
// Errors:
//   - ErrNilModel, ErrParticles, ErrWorkers, ErrResampleBelow, ErrHorizon,
//     ErrObservation: reported before any randomness is consumed.
//   - *DegenerateEnsembleError (errors.Is ErrDegenerateEnsemble) at the
//     first step whose log-normalizer is not finite.
//   - ctx.Err() on cancellation, checked between steps.
//
// Complexity: O(T·N) time and memory.
func Run(ctx context.Context, root *randsrc.Stream, model *volatility.Model, observations []float64, opts Options) (*Result, error) {
	if err := validate(model, observations, opts); err != nil {
		return nil, err
	}
	T, n := len(observations), opts.Particles

	streams := make([]*randsrc.Stream, n)
	for i := range streams {
		streams[i] = root.Derive(particleStream, uint64(i))
	}
	resampler := root.Derive(resampleStream)

	var (
		x    = make([]float64, n)
		logw = make([]float64, n)
		w    = make([]float64, n)
		idx  []int
		res  = &Result{
			X:    mat.NewDense(T, n, nil),
			W:    mat.NewDense(T, n, nil),
			XHat: make([]float64, T),
			ESS:  make([]float64, T),
		}
	)

	for t := 0; t < T; t++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := propagate(model, streams, x, logw, observations[t], t, opts.Workers); err != nil {
			return nil, err
		}

		logNorm, err := weights.Normalize(w, logw)
		if err != nil {
			return nil, &DegenerateEnsembleError{Step: t, LogNorm: logNorm, Err: err}
		}

		res.X.SetRow(t, x)
		res.W.SetRow(t, w)
		res.XHat[t] = floats.Dot(w, x)
		res.ESS[t] = weights.ESS(w)

		if opts.Resampler != nil && res.ESS[t] < opts.ResampleBelow*float64(n) {
			if idx == nil {
				idx = make([]int, n)
			}
			opts.Resampler.Resample(resampler, w, idx)
			reorder(x, idx)
			for i := range logw {
				logw[i] = 0
			}
			res.Resampled = append(res.Resampled, t)
		}
	}

	res.LogWeights = logw
	return res, nil
}

func validate(model *volatility.Model, observations []float64, opts Options) error {
	if model == nil {
		return ErrNilModel
	}
	if opts.Particles < 1 {
		return fmt.Errorf("%w: got %d", ErrParticles, opts.Particles)
	}
	if opts.Workers < 0 {
		return fmt.Errorf("%w: got %d", ErrWorkers, opts.Workers)
	}
	if opts.Resampler != nil && (opts.ResampleBelow < 0 || opts.ResampleBelow > 1 || math.IsNaN(opts.ResampleBelow)) {
		return fmt.Errorf("%w: got %g", ErrResampleBelow, opts.ResampleBelow)
	}
	if len(observations) == 0 {
		return ErrHorizon
	}
	for t, y := range observations {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return fmt.Errorf("%w: y[%d]=%v", ErrObservation, t, y)
		}
	}
	return nil
}

// propagate advances every particle to step t and adds its observation
// log-likelihood. Particles are split into contiguous blocks, one per worker;
// the call returns only when the whole ensemble is done.
func propagate(model *volatility.Model, streams []*randsrc.Stream, x, logw []float64, y float64, t, workers int) error {
	step := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if t == 0 {
				x[i] = model.SampleInitial(streams[i])
				logw[i] = model.ObservationLogDensity(y, x[i])
				continue
			}
			x[i] = model.SampleTransition(streams[i], x[i])
			logw[i] += model.ObservationLogDensity(y, x[i])
		}
	}

	n := len(x)
	if workers <= 1 || n == 1 {
		step(0, n)
		return nil
	}
	block := (n + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += block {
		hi := min(lo+block, n)
		g.Go(func() error {
			step(lo, hi)
			return nil
		})
	}
	return g.Wait()
}

// reorder sets x[i] = old x[idx[i]].
func reorder(x []float64, idx []int) {
	old := append([]float64(nil), x...)
	for i, j := range idx {
		x[i] = old[j]
	}
}
