// Package lattice grows self-avoiding walks (SAWs) on the integer lattice by
// Sequential Importance Sampling.
//
// What:
//
//   - Position / Walk: lattice cells and ordered, self-avoiding paths.
//   - Grow: one SIS draw of a walk with target length T, returning the walk
//     and its multiplicative importance weight ∏ nt.
//   - Extend: continue growing a prepared walk (useful for traps and tests).
//
// Why:
//
//   - The number of SAWs Z_T is the partition function of simple polymer
//     models; it has no closed form and exact enumeration is exponential.
//
// Complexity:
//
//   - Grow: O(T·d) time, O(T) memory (d = number of neighbors, 4 or 8).
//
// Options:
//
//   - Options.Connectivity: Conn4 (square lattice, default) or Conn8.
//
// Errors:
//
//   - ErrInvalidLength: T < 1, or a target shorter than the walk to extend.
//   - ErrEmptyWalk, ErrNotSelfAvoiding, ErrNotConnected: invalid WalkFrom input.
//
// A dead end (no free neighbor before reaching T) is not an error: the
// returned Sample has DeadEnd set and weight 0.
package lattice
