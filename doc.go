// Package lvsis is a small laboratory for Sequential Importance Sampling:
// growing self-avoiding walks to estimate their number, and filtering a
// stochastic-volatility series with weighted particles.
//
// 🚀 What is lvsis?
//
//	Two estimators built on the same machinery:
//		• Partition function: Z_T, the number of self-avoiding walks with T
//		  positions on the square lattice, by Rosenbluth growth with
//		  weights ∏ nt (unbiased over all draws, or conditioned on survival)
//		• Particle filter: bootstrap SIS for x_t = φx_{t−1} + ε,
//		  y_t ~ Normal(0, exp(γ + x_t)), with cumulative weights and no
//		  resampling unless asked for
//
// ✨ Why lvsis?
//
//   - Reproducible – every draw and particle owns a derived random stream,
//     so results depend on the seed only, never on the worker count
//   - Log-domain weights – no overflow for long walks, -Inf for dead ends
//   - Diagnostics – survival rate, relative standard error, effective
//     sample size, distinct walks observed
//
// Packages:
//
//	randsrc/    — seeded random streams and pure substream derivation
//	weights/    — log-sum-exp, normalization, effective sample size
//	lattice/    — self-avoiding walks and sequential growth
//	partition/  — Z_T estimation over a range of lengths
//	volatility/ — the stochastic-volatility model and simulator
//	particle/   — the SIS particle filter and optional resamplers
//	config/     — run configuration (defaults, JSON, environment)
//	render/     — PNG figures and the HTML report
//	cmd/lvsis/  — the command-line driver
//
// Quick ASCII example, a walk with T=5 positions and its branching counts:
//
//	    ·───·
//	    │   │
//	    o   ·───·        weight = 4·3·3·2 = 72
//
//	go run github.com/katalvlaran/lvsis/cmd/lvsis -run all -out out
package lvsis
