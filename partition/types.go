// Package partition defines options, records and sentinel errors for the
// partition subpackage of github.com/katalvlaran/lvsis.
package partition

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvsis/lattice"
)

// Sentinel errors for partition-function estimation.
var (
	// ErrNoLengths indicates an empty list of target lengths.
	ErrNoLengths = errors.New("partition: at least one target length is required")
	// ErrInvalidLength indicates a target length T < 1.
	ErrInvalidLength = errors.New("partition: target length must be at least 1")
	// ErrInvalidDraws indicates Options.Draws < 1.
	ErrInvalidDraws = errors.New("partition: draws per length must be at least 1")
	// ErrInvalidWorkers indicates Options.Workers < 0.
	ErrInvalidWorkers = errors.New("partition: workers must be non-negative")
	// ErrInvalidPolicy indicates an unknown estimator policy.
	ErrInvalidPolicy = errors.New("partition: unknown estimator policy")
	// ErrInvalidRange indicates Lengths(start, stop, step) cannot produce lengths.
	ErrInvalidRange = errors.New("partition: invalid length range")
	// ErrWeightOverflow indicates the estimate exceeds the float64 range.
	// LogZHat in the accompanying record is still valid.
	ErrWeightOverflow = errors.New("partition: estimate overflows float64")
)

// Policy chooses which draws enter the average.
type Policy int

const (
	// AllDraws averages over every attempt, dead ends counted as weight 0.
	// This is the unbiased SIS estimator of Z_T.
	AllDraws Policy = iota
	// Survivors averages only the strictly positive weights. The estimate is
	// conditioned on survival and biased upwards for lengths where dead ends
	// occur. Kept for comparison with survivor-only tables.
	Survivors
)

func (p Policy) String() string {
	switch p {
	case AllDraws:
		return "all-draws"
	case Survivors:
		return "survivors"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps "all-draws" or "survivors" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "all-draws", "all":
		return AllDraws, nil
	case "survivors", "survivor":
		return Survivors, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// DefaultDraws is the number of draws per length of the classic study.
const DefaultDraws = 100000

// DefaultDistinctBelow is the length threshold below which distinct walks
// are tracked. Exact counts are cheap to cross-check in that range.
const DefaultDistinctBelow = 11

// Options configures Estimate.
//
// Fields:
//   - Draws         — independent walk draws per target length (N).
//   - Workers       — goroutines sharing the draws; 0 means GOMAXPROCS.
//     Results do not depend on this value.
//   - Policy        — AllDraws (default) or Survivors.
//   - DistinctBelow — track distinct observed walks for T < DistinctBelow;
//     0 disables the diagnostic.
//   - Lattice       — walk growth options.
//   - OnDraw        — called once per finished draw with its length; must be
//     safe for concurrent use.
//   - OnLength      — called after each length with its Record.
type Options struct {
	Draws         int
	Workers       int
	Policy        Policy
	DistinctBelow int
	Lattice       lattice.Options

	OnDraw   func(length int)
	OnLength func(Record)
}

// DefaultOptions returns Options with Draws=100000, Workers=0 (GOMAXPROCS),
// Policy=AllDraws, DistinctBelow=11 and the square lattice.
func DefaultOptions() Options {
	return Options{
		Draws:         DefaultDraws,
		Policy:        AllDraws,
		DistinctBelow: DefaultDistinctBelow,
		Lattice:       lattice.DefaultOptions(),
	}
}

// Record is the estimate for one target length.
//
// Fields:
//   - Length           — T, the number of positions of the walks.
//   - ZHat             — estimate of Z_T (0 when no draw survived).
//   - LogZHat          — log of ZHat, computed in the log domain.
//   - RelStdErr        — relative standard error of ZHat over the draws
//     entering the average (NaN with fewer than two such draws).
//   - Attempts         — draws performed (Options.Draws).
//   - Successes        — draws that reached length T.
//   - DrawESS          — effective sample size of the draw weights.
//   - DistinctObserved — distinct walks among the successful draws of this
//     batch; a same-sample lower bound on Z_T, not an enumeration.
//   - HasDistinct      — DistinctObserved was tracked for this length.
type Record struct {
	Length           int
	Policy           Policy
	ZHat             float64
	LogZHat          float64
	RelStdErr        float64
	Attempts         int
	Successes        int
	DrawESS          float64
	DistinctObserved int
	HasDistinct      bool
}

// SurvivalRate is Successes/Attempts.
func (r Record) SurvivalRate() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Successes) / float64(r.Attempts)
}
