// Package particle implements a bootstrap particle filter by Sequential
// Importance Sampling for the stochastic-volatility model of package
// volatility.
//
// 🚀 What is computed?
//
//	For N particles the filter propagates x_t^i through the transition prior
//	and accumulates the observation log-likelihood
//
//	  ℓ_t^i = ℓ_{t−1}^i + log N(y_t; 0, exp(γ + x_t^i))
//
//	then renormalizes w_t = softmax(ℓ_t) and reports x̂_t = Σ_i w_t^i·x_t^i.
//
// ✨ Key features:
//   - cumulative log-weights, normalized by log-sum-exp at every step
//   - no resampling by default: weight degeneracy is visible in Result.ESS
//   - optional Resampler (Systematic, Multinomial) behind Options
//   - per-particle derived random streams: identical output for any Workers
//   - full history in gonum mat.Dense (T×N particles and weights)
//
// ⚙️ Usage:
//
//	model, _ := volatility.New(volatility.DefaultParams())
//	traj, _ := model.Simulate(randsrc.New(1).Derive(0), 100)
//	res, err := particle.Run(ctx, randsrc.New(1), model, traj.Y, particle.DefaultOptions())
//
// Errors:
//
//   - ErrNilModel, ErrParticles, ErrWorkers, ErrResampleBelow, ErrHorizon,
//     ErrObservation: invalid input.
//   - *DegenerateEnsembleError: every particle has zero weight at some step.
package particle
