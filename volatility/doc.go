// Package volatility defines the nonlinear stochastic-volatility state-space
// model used to demonstrate Sequential Importance Sampling filtering.
//
// Model:
//
//	x_t = φ·x_{t−1} + Normal(0, σ)        latent log-volatility
//	y_t = Normal(0, exp(γ + x_t))         observed return
//	x_0 ~ Normal(0, σ/√(1−φ²))
//
// Every Normal is parameterized by its scale (standard deviation). The
// formulas are kept exactly as written above; in particular the observation
// scale is exp(γ + x), not its square root.
//
// Options:
//
//   - Params.Phi: persistence, |φ| < 1.
//   - Params.Sigma: innovation scale, σ ≥ 0.
//   - Params.Gamma: observation offset.
//
// Errors:
//
//   - ErrPhi, ErrSigma, ErrParams: invalid parameters, reported by New.
//   - ErrHorizon: Simulate with T < 1.
package volatility
