// Package randsrc provides the seeded random streams consumed by every
// sampler in lvsis.
//
// What:
//
//   - Stream: a PCG generator (math/rand/v2) that remembers its seed.
//   - IntN / Choose: uniform choice among a finite, non-empty set.
//   - Normal: Normal(mean, scale) variates through gonum's distuv.Normal.
//   - Derive: independent substreams from (seed, ids) via SplitMix64 mixing.
//
// Why:
//
//   - Sequential Importance Sampling results must be reproducible for a
//     fixed seed, including when draws run on several goroutines.
//
// Concurrency:
//
//   - A Stream is not safe for concurrent use. Give every worker (or every
//     draw, or every particle) its own derived stream.
package randsrc
