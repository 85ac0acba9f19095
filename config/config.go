package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvsis/partition"
	"github.com/katalvlaran/lvsis/particle"
	"github.com/katalvlaran/lvsis/volatility"
)

// ErrInvalidConfig wraps every validation and loading failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "LVSIS_"

const maxFileSize = 1 << 20

// Config is the run-level configuration of the lvsis command.
type Config struct {
	Seed       uint64     `json:"seed"`
	Walks      Walks      `json:"walks"`
	Volatility Volatility `json:"volatility"`
	OutputDir  string     `json:"output_dir"`
}

// Walks configures the partition-function study. Lengths run over the
// half-open range [Start, Stop) with the given Step.
type Walks struct {
	Start         int    `json:"start"`
	Stop          int    `json:"stop"`
	Step          int    `json:"step"`
	Draws         int    `json:"draws"`
	Workers       int    `json:"workers"`
	Policy        string `json:"policy"`
	DistinctBelow int    `json:"distinct_below"`
}

// Volatility configures the simulation and the particle filter.
type Volatility struct {
	Phi       float64 `json:"phi"`
	Sigma     float64 `json:"sigma"`
	Gamma     float64 `json:"gamma"`
	Horizon   int     `json:"horizon"`
	Particles int     `json:"particles"`
	Workers   int     `json:"workers"`
}

// Default reproduces the reference study: seed 42, T = 3..20 with 100000
// draws each, and a 100-step filter with 10 particles under φ=0.95,
// σ=√(1−φ²), γ=1.
func Default() Config {
	p := volatility.DefaultParams()
	return Config{
		Seed: 42,
		Walks: Walks{
			Start:         3,
			Stop:          21,
			Step:          1,
			Draws:         partition.DefaultDraws,
			Workers:       0,
			Policy:        partition.AllDraws.String(),
			DistinctBelow: partition.DefaultDistinctBelow,
		},
		Volatility: Volatility{
			Phi:       p.Phi,
			Sigma:     p.Sigma,
			Gamma:     p.Gamma,
			Horizon:   100,
			Particles: particle.DefaultOptions().Particles,
			Workers:   1,
		},
		OutputDir: "out",
	}
}

// Load reads a JSON configuration file on top of Default, so fields omitted
// from the file keep their default values. The path must carry a .json
// extension and the file must not exceed 1 MiB. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	clean := filepath.Clean(path)
	if ext := filepath.Ext(clean); ext != ".json" {
		return cfg, fmt.Errorf("%w: config file must have .json extension, got %q", ErrInvalidConfig, ext)
	}
	info, err := os.Stat(clean)
	if err != nil {
		return cfg, fmt.Errorf("config: stat %s: %w", clean, err)
	}
	if info.Size() > maxFileSize {
		return cfg, fmt.Errorf("%w: config file too large: %d bytes (max %d)", ErrInvalidConfig, info.Size(), maxFileSize)
	}
	data, err := os.ReadFile(clean)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", clean, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, clean, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overlays LVSIS_* variables found by lookup (typically
// os.LookupEnv). Recognized names, without the prefix:
//
//	SEED, OUTPUT_DIR, DRAWS, POLICY, WALK_WORKERS, PARTICLES, HORIZON,
//	FILTER_WORKERS, WORKERS (sets both worker counts)
//
// Empty values are ignored. Malformed numbers fail with ErrInvalidConfig.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	ints := []struct {
		name string
		dst  []*int
	}{
		{"DRAWS", []*int{&c.Walks.Draws}},
		{"WALK_WORKERS", []*int{&c.Walks.Workers}},
		{"PARTICLES", []*int{&c.Volatility.Particles}},
		{"HORIZON", []*int{&c.Volatility.Horizon}},
		{"FILTER_WORKERS", []*int{&c.Volatility.Workers}},
		{"WORKERS", []*int{&c.Walks.Workers, &c.Volatility.Workers}},
	}
	for _, e := range ints {
		v, ok := get(e.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidConfig, EnvPrefix, e.name, v, err)
		}
		for _, p := range e.dst {
			*p = n
		}
	}

	if v, ok := get("SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSEED=%q: %v", ErrInvalidConfig, EnvPrefix, v, err)
		}
		c.Seed = seed
	}
	if v, ok := get("POLICY"); ok {
		c.Walks.Policy = v
	}
	if v, ok := get("OUTPUT_DIR"); ok {
		c.OutputDir = v
	}
	return nil
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	w := c.Walks
	if _, err := partition.Lengths(w.Start, w.Stop, w.Step); err != nil {
		return fmt.Errorf("%w: walks: %v", ErrInvalidConfig, err)
	}
	if w.Draws < 1 {
		return fmt.Errorf("%w: walks.draws must be at least 1, got %d", ErrInvalidConfig, w.Draws)
	}
	if w.Workers < 0 {
		return fmt.Errorf("%w: walks.workers must be non-negative, got %d", ErrInvalidConfig, w.Workers)
	}
	if w.DistinctBelow < 0 {
		return fmt.Errorf("%w: walks.distinct_below must be non-negative, got %d", ErrInvalidConfig, w.DistinctBelow)
	}
	if _, err := partition.ParsePolicy(w.Policy); err != nil {
		return fmt.Errorf("%w: walks: %v", ErrInvalidConfig, err)
	}

	v := c.Volatility
	if err := c.ModelParams().Validate(); err != nil {
		return fmt.Errorf("%w: volatility: %v", ErrInvalidConfig, err)
	}
	if v.Horizon < 1 {
		return fmt.Errorf("%w: volatility.horizon must be at least 1, got %d", ErrInvalidConfig, v.Horizon)
	}
	if v.Particles < 1 {
		return fmt.Errorf("%w: volatility.particles must be at least 1, got %d", ErrInvalidConfig, v.Particles)
	}
	if v.Workers < 0 {
		return fmt.Errorf("%w: volatility.workers must be non-negative, got %d", ErrInvalidConfig, v.Workers)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: output_dir is empty", ErrInvalidConfig)
	}
	return nil
}

// Lengths expands the walk length range.
func (c Config) Lengths() ([]int, error) {
	return partition.Lengths(c.Walks.Start, c.Walks.Stop, c.Walks.Step)
}

// PartitionOptions converts the walk settings into partition.Options.
// Hooks are left nil.
func (c Config) PartitionOptions() (partition.Options, error) {
	pol, err := partition.ParsePolicy(c.Walks.Policy)
	if err != nil {
		return partition.Options{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	opts := partition.DefaultOptions()
	opts.Draws = c.Walks.Draws
	opts.Workers = c.Walks.Workers
	opts.Policy = pol
	opts.DistinctBelow = c.Walks.DistinctBelow
	return opts, nil
}

// ModelParams returns the stochastic-volatility parameters.
func (c Config) ModelParams() volatility.Params {
	return volatility.Params{Phi: c.Volatility.Phi, Sigma: c.Volatility.Sigma, Gamma: c.Volatility.Gamma}
}

// FilterOptions converts the filter settings into particle.Options.
func (c Config) FilterOptions() particle.Options {
	opts := particle.DefaultOptions()
	opts.Particles = c.Volatility.Particles
	opts.Workers = c.Volatility.Workers
	return opts
}
