// Package partition estimates the number Z_T of self-avoiding walks with T
// positions on the square lattice by Sequential Importance Sampling.
//
// 🚀 What is estimated?
//
//	Each draw grows one walk with lattice.Grow and carries the weight ∏ nt,
//	the reciprocal of its proposal probability. The mean of the weights is an
//	estimate of Z_T:
//
//	  Ẑ_T = (1/N) Σ_d w_d                (AllDraws, unbiased, default)
//	  Ẑ_T = (1/S) Σ_{d: w_d>0} w_d       (Survivors, conditioned on survival)
//
// ✨ Key features:
//   - parallel draws (errgroup) with per-draw derived random streams, so the
//     result is the same for any number of workers
//   - log-domain accumulation; the only exponentiation is the final mean
//   - diagnostics per length: survival rate, relative standard error,
//     effective sample size of the draw weights
//   - DistinctObserved: distinct walks seen in the same batch for small T.
//     It is a lower bound on Z_T drawn from the same sample, not an
//     exhaustive enumeration.
//
// ⚙️ Usage:
//
//	lengths, _ := partition.Lengths(3, 21, 1)
//	opts := partition.DefaultOptions()
//	recs, err := partition.Estimate(ctx, randsrc.New(42), lengths, opts)
//
// Errors:
//
//   - ErrNoLengths, ErrInvalidLength, ErrInvalidDraws, ErrInvalidWorkers,
//     ErrInvalidPolicy, ErrInvalidRange: configuration errors.
//   - ErrWeightOverflow: the estimate does not fit in a float64.
package partition
