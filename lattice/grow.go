package lattice

import (
	"math"
	"math/big"
)

// Chooser is the part of a random source the walk sampler consumes:
// a uniform index in [0, n). *randsrc.Stream satisfies it.
type Chooser interface {
	IntN(n int) int
}

// Sample is the outcome of one growth attempt.
//
// Fields:
//   - Walk      — the grown walk; shorter than Target iff DeadEnd.
//   - Target    — the requested number of positions T.
//   - Branching — nt observed at every growth step taken, in order.
//   - LogWeight — Σ log(nt), or -Inf for a dead end.
//   - DeadEnd   — growth stopped because the endpoint had no free neighbor.
//
// The importance weight is ∏ nt for a completed walk and 0 for a dead end.
// Because the proposal picks uniformly among nt options at each step, ∏ nt is
// the reciprocal of the walk's proposal probability.
type Sample struct {
	Walk      *Walk
	Target    int
	Branching []int
	LogWeight float64
	DeadEnd   bool
}

// Weight returns the importance weight as a float64: 0 for a dead end,
// otherwise ∏ Branching. The product is exact while it fits in 53 bits and
// saturates to +Inf beyond the float64 range; use ExactWeight or LogWeight
// for long walks.
func (s Sample) Weight() float64 {
	if s.DeadEnd {
		return 0
	}
	w := 1.0
	for _, nt := range s.Branching {
		w *= float64(nt)
	}
	return w
}

// ExactWeight returns the importance weight in arbitrary precision.
// Complexity: O(L) big-integer multiplications.
func (s Sample) ExactWeight() *big.Int {
	if s.DeadEnd {
		return new(big.Int)
	}
	w := big.NewInt(1)
	var f big.Int
	for _, nt := range s.Branching {
		w.Mul(w, f.SetInt64(int64(nt)))
	}
	return w
}

// Grow samples one self-avoiding walk of target length T from the origin by
// Sequential Importance Sampling.
//
// Algorithm:
//  1. Start with {Origin} and weight 1.
//  2. Repeat up to T-1 times: collect the free neighbors of the endpoint;
//     nt = their count.
//     - nt = 0: dead end; weight becomes 0 and growth stops.
//     - otherwise pick one uniformly with r, append it, weight *= nt.
//
// A dead end is a normal outcome (Sample.DeadEnd), never an error.
// T < 1 returns ErrInvalidLength before any randomness is consumed.
// Grow(r, 1, ...) is {Origin} with weight exactly 1.
//
// Complexity: O(T·d) time, O(T) memory.
func Grow(r Chooser, target int, opts Options) (Sample, error) {
	if target < 1 {
		return Sample{}, ErrInvalidLength
	}
	return extend(r, NewWalk(target), target, opts), nil
}

// Extend continues growing w in place until it has target positions or dead-
// ends. Branching and LogWeight cover only the steps taken by this call, so
// the weight is that of the extension given the starting state.
//
// target < w.Len() returns ErrInvalidLength; target == w.Len() is a zero-step
// extension with weight 1.
func Extend(r Chooser, w *Walk, target int, opts Options) (Sample, error) {
	if w == nil || w.Len() == 0 {
		return Sample{}, ErrEmptyWalk
	}
	if target < 1 || target < w.Len() {
		return Sample{}, ErrInvalidLength
	}
	return extend(r, w, target, opts), nil
}

func extend(r Chooser, w *Walk, target int, opts Options) Sample {
	w.reserve(target)
	steps := target - w.Len()
	s := Sample{
		Walk:      w,
		Target:    target,
		Branching: make([]int, 0, steps),
	}

	conn := opts.Connectivity
	free := make([]Position, 0, conn.Degree())
	for i := 0; i < steps; i++ {
		free = FreeNeighbors(w, conn, free[:0])
		nt := len(free)
		if nt == 0 {
			s.DeadEnd = true
			s.LogWeight = math.Inf(-1)
			return s
		}
		w.push(free[r.IntN(nt)])
		s.Branching = append(s.Branching, nt)
		s.LogWeight += math.Log(float64(nt))
	}
	return s
}
