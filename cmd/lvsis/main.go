// Command lvsis runs the Sequential Importance Sampling studies: the
// self-avoiding-walk partition function sweep and the stochastic-volatility
// particle filter, and writes their figures and an HTML report.
//
// Usage:
//
//	lvsis [-config run.json] [-seed 42] [-out out] [-run walks|filter|all] [-workers N]
//
// Settings are layered: built-in defaults, then the JSON file, then LVSIS_*
// environment variables (a .env file is loaded first when present), then
// the flags given on the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"github.com/katalvlaran/lvsis/config"
	"github.com/katalvlaran/lvsis/particle"
	"github.com/katalvlaran/lvsis/partition"
	"github.com/katalvlaran/lvsis/randsrc"
	"github.com/katalvlaran/lvsis/render"
	"github.com/katalvlaran/lvsis/volatility"
)

// Substreams of the root seed, one per stage, so that running a single
// stage reproduces the numbers of the combined run.
const (
	walksStream uint64 = iota + 1
	simulateStream
	filterStream
)

func main() {
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("lvsis: %v", err)
	}
}

// options are the command-line settings that are not part of config.Config.
type options struct {
	stage string
	quiet bool
}

func run(ctx context.Context, args []string, progressOut io.Writer) error {
	cfg, opt, err := parse(args)
	if err != nil {
		return err
	}
	log.Printf("seed=%d stage=%s out=%s", cfg.Seed, opt.stage, cfg.OutputDir)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	root := randsrc.New(cfg.Seed)

	var (
		records []partition.Record
		traj    volatility.Trajectory
		res     *particle.Result
	)
	if opt.stage == "walks" || opt.stage == "all" {
		out := progressOut
		if opt.quiet {
			out = io.Discard
		}
		if records, err = runWalks(ctx, cfg, root.Derive(walksStream), out); err != nil {
			return err
		}
	}
	if opt.stage == "filter" || opt.stage == "all" {
		if traj, res, err = runFilter(ctx, cfg, root); err != nil {
			return err
		}
	}

	path := filepath.Join(cfg.OutputDir, "report.html")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := render.Report(f, records, traj, res); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s", path)
	return nil
}

// parse layers defaults, the JSON file, the environment and explicit flags.
func parse(args []string) (config.Config, options, error) {
	fs := flag.NewFlagSet("lvsis", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON configuration file")
	seed := fs.Uint64("seed", 0, "root random seed (overrides config)")
	outDir := fs.String("out", "", "output directory (overrides config)")
	stage := fs.String("run", "all", "stage to run: walks, filter or all")
	workers := fs.Int("workers", 0, "worker goroutines for both stages, 0 = GOMAXPROCS for walks")
	quiet := fs.Bool("quiet", false, "disable progress bars")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, options{}, err
	}

	opt := options{stage: *stage, quiet: *quiet}
	switch opt.stage {
	case "walks", "filter", "all":
	default:
		return config.Config{}, opt, fmt.Errorf("%w: -run must be walks, filter or all, got %q", config.ErrInvalidConfig, opt.stage)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return cfg, opt, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, opt, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seed
		case "out":
			cfg.OutputDir = *outDir
		case "workers":
			cfg.Walks.Workers = *workers
			cfg.Volatility.Workers = *workers
		}
	})
	return cfg, opt, cfg.Validate()
}

func runWalks(ctx context.Context, cfg config.Config, root *randsrc.Stream, progressOut io.Writer) ([]partition.Record, error) {
	lengths, err := cfg.Lengths()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.PartitionOptions()
	if err != nil {
		return nil, err
	}
	bars := newProgress(progressOut, opts.Draws)
	opts.OnDraw = bars.add
	opts.OnLength = func(r partition.Record) {
		bars.finish()
		log.Printf("T=%-3d Z=%-14.6g rse=%-8.3g survival=%-6.3f ess=%-10.1f distinct=%s",
			r.Length, r.ZHat, r.RelStdErr, r.SurvivalRate(), r.DrawESS, distinct(r))
	}

	log.Printf("walks: %d lengths, %d draws each, policy=%s", len(lengths), opts.Draws, opts.Policy)
	records, err := partition.Estimate(ctx, root, lengths, opts)
	bars.finish()
	if err != nil {
		return records, err
	}

	path := filepath.Join(cfg.OutputDir, "partition.png")
	if err := render.PartitionPNG(records, path); err != nil {
		return records, err
	}
	log.Printf("wrote %s", path)
	return records, nil
}

func runFilter(ctx context.Context, cfg config.Config, root *randsrc.Stream) (volatility.Trajectory, *particle.Result, error) {
	model, err := volatility.New(cfg.ModelParams())
	if err != nil {
		return volatility.Trajectory{}, nil, err
	}
	traj, err := model.Simulate(root.Derive(simulateStream), cfg.Volatility.Horizon)
	if err != nil {
		return traj, nil, err
	}

	opts := cfg.FilterOptions()
	log.Printf("filter: T=%d particles=%d phi=%g sigma=%g gamma=%g",
		traj.Len(), opts.Particles, cfg.Volatility.Phi, cfg.Volatility.Sigma, cfg.Volatility.Gamma)
	res, err := particle.Run(ctx, root.Derive(filterStream), model, traj.Y, opts)
	if err != nil {
		var de *particle.DegenerateEnsembleError
		if errors.As(err, &de) {
			log.Printf("filter: all particles lost their weight at t=%d", de.Step)
		}
		return traj, nil, err
	}
	T := res.Steps()
	log.Printf("filter: ESS t=0 %.2f, t=%d %.2f", res.ESS[0], T-1, res.ESS[T-1])

	path := filepath.Join(cfg.OutputDir, "filter.png")
	if err := render.FilterPNG(traj, res, path); err != nil {
		return traj, res, err
	}
	log.Printf("wrote %s", path)
	return traj, res, nil
}

func distinct(r partition.Record) string {
	if !r.HasDistinct {
		return "-"
	}
	return fmt.Sprint(r.DistinctObserved)
}

// progress shows one bar per walk length. OnDraw is called from many
// goroutines, so the current bar is guarded.
type progress struct {
	mu     sync.Mutex
	out    io.Writer
	total  int
	length int
	bar    *progressbar.ProgressBar
}

func newProgress(out io.Writer, total int) *progress {
	return &progress{out: out, total: total}
}

func (p *progress) add(length int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar == nil || p.length != length {
		p.length = length
		p.bar = progressbar.NewOptions(p.total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(fmt.Sprintf("T=%d", length)),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Add(1)
}

func (p *progress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
