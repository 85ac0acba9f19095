// Package render turns estimator output into figures.
//
//   - PartitionPNG: Ẑ_T against T on a log axis (gonum/plot).
//   - FilterPNG: observations, latent truth and estimate, particle cloud
//     and weights, stacked on a shared time axis (gonum/plot).
//   - Report: a single interactive HTML page with the same data plus the
//     effective sample size history (go-echarts).
//
// Errors: ErrNoData when there is nothing to draw, ErrMismatch when the
// trajectory and the filter result have different horizons.
package render
