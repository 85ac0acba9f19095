package partition

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvsis/lattice"
	"github.com/katalvlaran/lvsis/randsrc"
	"github.com/katalvlaran/lvsis/weights"
)

// drawChunk is the number of consecutive draws one worker task handles.
const drawChunk = 512

// cancelEvery is how many draws a worker performs between context checks.
const cancelEvery = 64

// maxLogFloat is log(math.MaxFloat64); larger log-estimates overflow.
var maxLogFloat = math.Log(math.MaxFloat64)

// Estimate computes one Record per target length, in the order given.
//
// For every T it performs opts.Draws independent lattice.Grow draws. Draw d of
// length T consumes only root.Derive(T, d), so the records are identical for
// any opts.Workers and any scheduling. Weights are accumulated in the log
// domain and exponentiated once per length.
//
// Errors:
//   - ErrNoLengths, ErrInvalidLength, ErrInvalidDraws, ErrInvalidWorkers,
//     ErrInvalidPolicy: configuration errors, reported before any draw.
//   - ErrWeightOverflow: ZHat exceeds float64; the records computed so far
//     and the overflowing one (with a valid LogZHat) are returned.
//   - ctx.Err() on cancellation.
//
// All errors are wrapped with the offending length.
//
// Complexity: O(Σ_T Draws·T) time; O(Draws) memory per length (O(Draws·T)
// while distinct walks are tracked).
func Estimate(ctx context.Context, root *randsrc.Stream, lengths []int, opts Options) ([]Record, error) {
	if len(lengths) == 0 {
		return nil, ErrNoLengths
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	for _, T := range lengths {
		if T < 1 {
			return nil, fmt.Errorf("%w: T=%d", ErrInvalidLength, T)
		}
	}

	records := make([]Record, 0, len(lengths))
	for _, T := range lengths {
		rec, err := estimateLength(ctx, root, T, opts)
		if err != nil {
			if rec.Length != 0 {
				records = append(records, rec)
			}
			return records, err
		}
		records = append(records, rec)
		if opts.OnLength != nil {
			opts.OnLength(rec)
		}
	}
	return records, nil
}

// EstimateLength is Estimate for a single target length.
func EstimateLength(ctx context.Context, root *randsrc.Stream, T int, opts Options) (Record, error) {
	recs, err := Estimate(ctx, root, []int{T}, opts)
	if len(recs) == 0 {
		return Record{}, err
	}
	return recs[0], err
}

func validateOptions(opts Options) error {
	if opts.Draws < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDraws, opts.Draws)
	}
	if opts.Workers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, opts.Workers)
	}
	if opts.Policy != AllDraws && opts.Policy != Survivors {
		return fmt.Errorf("%w: %d", ErrInvalidPolicy, int(opts.Policy))
	}
	return nil
}

// estimateLength runs the draws for T in parallel and reduces them.
func estimateLength(ctx context.Context, root *randsrc.Stream, T int, opts Options) (Record, error) {
	n := opts.Draws
	logw := make([]float64, n)
	var keys []string
	if T < opts.DistinctBelow {
		keys = make([]string, n)
	}

	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += drawChunk {
		hi := min(lo+drawChunk, n)
		g.Go(func() error {
			for d := lo; d < hi; d++ {
				if (d-lo)%cancelEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				s, err := lattice.Grow(root.Derive(uint64(T), uint64(d)), T, opts.Lattice)
				if err != nil {
					return err
				}
				logw[d] = s.LogWeight
				if keys != nil && !s.DeadEnd {
					keys[d] = s.Walk.Key()
				}
				if opts.OnDraw != nil {
					opts.OnDraw(T)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Record{}, fmt.Errorf("partition: T=%d: %w", T, err)
	}

	rec := reduce(T, logw, opts.Policy)
	if keys != nil {
		rec.HasDistinct = true
		rec.DistinctObserved = countDistinct(keys)
	}
	return rec, guardOverflow(&rec)
}

// guardOverflow flags estimates whose exponent does not fit in a float64
// instead of letting ZHat saturate silently.
func guardOverflow(rec *Record) error {
	if rec.LogZHat <= maxLogFloat {
		return nil
	}
	rec.ZHat = math.Inf(1)
	return fmt.Errorf("%w: T=%d log(Z)=%.3f", ErrWeightOverflow, rec.Length, rec.LogZHat)
}

// reduce turns per-draw log-weights (-Inf for dead ends) into a Record.
func reduce(T int, logw []float64, policy Policy) Record {
	rec := Record{
		Length:   T,
		Policy:   policy,
		Attempts: len(logw),
		LogZHat:  math.Inf(-1),
	}

	alive := make([]float64, 0, len(logw))
	for _, l := range logw {
		if !math.IsInf(l, -1) {
			alive = append(alive, l)
		}
	}
	rec.Successes = len(alive)
	if rec.Successes == 0 {
		rec.RelStdErr = math.NaN()
		return rec
	}

	denom := rec.Attempts
	entering := logw
	if policy == Survivors {
		denom = rec.Successes
		entering = alive
	}
	rec.LogZHat = weights.LogMeanExp(alive, denom)
	rec.ZHat = math.Exp(rec.LogZHat)
	rec.RelStdErr = relStdErr(entering)

	w := make([]float64, len(alive))
	if _, err := weights.Normalize(w, alive); err == nil {
		rec.DrawESS = weights.ESS(w)
	}
	return rec
}

// relStdErr is the relative standard error of the mean of exp(logw),
// evaluated on weights rescaled by their maximum so that it never overflows.
func relStdErr(logw []float64) float64 {
	if len(logw) < 2 {
		return math.NaN()
	}
	mx := floats.Max(logw)
	u := make([]float64, len(logw))
	for i, l := range logw {
		u[i] = math.Exp(l - mx)
	}
	mean, std := stat.MeanStdDev(u, nil)
	if mean == 0 {
		return math.NaN()
	}
	return std / (mean * math.Sqrt(float64(len(u))))
}

// countDistinct counts distinct non-empty keys.
func countDistinct(keys []string) int {
	set := make(map[string]struct{})
	for _, k := range keys {
		if k != "" {
			set[k] = struct{}{}
		}
	}
	return len(set)
}

// Lengths returns start, start+step, ... strictly below stop, mirroring a
// half-open numeric range. start must be ≥ 1, stop > start and step ≥ 1.
func Lengths(start, stop, step int) ([]int, error) {
	if start < 1 || stop <= start || step < 1 {
		return nil, fmt.Errorf("%w: start=%d stop=%d step=%d", ErrInvalidRange, start, stop, step)
	}
	out := make([]int, 0, (stop-start+step-1)/step)
	for T := start; T < stop; T += step {
		out = append(out, T)
	}
	return out, nil
}
