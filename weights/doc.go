// Package weights holds the log-domain arithmetic shared by both importance
// samplers: log-sum-exp, normalization of cumulative log-weights and the
// effective sample size diagnostic.
//
// All routines work on plain []float64 and delegate the vector kernels to
// gonum's floats package.
package weights
