package config_test

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsis/config"
	"github.com/katalvlaran/lvsis/partition"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, uint64(42), cfg.Seed)
	lengths, err := cfg.Lengths()
	require.NoError(t, err)
	assert.Equal(t, 3, lengths[0])
	assert.Equal(t, 20, lengths[len(lengths)-1])
	assert.Len(t, lengths, 18)

	assert.Equal(t, 100000, cfg.Walks.Draws)
	assert.Equal(t, 0.95, cfg.Volatility.Phi)
	assert.InDelta(t, math.Sqrt(1-0.95*0.95), cfg.Volatility.Sigma, 1e-15)
	assert.Equal(t, 1.0, cfg.Volatility.Gamma)
	assert.Equal(t, 100, cfg.Volatility.Horizon)
	assert.Equal(t, 10, cfg.Volatility.Particles)

	opts, err := cfg.PartitionOptions()
	require.NoError(t, err)
	assert.Equal(t, partition.AllDraws, opts.Policy)
	assert.Nil(t, opts.OnDraw)

	fo := cfg.FilterOptions()
	assert.Equal(t, 10, fo.Particles)
	assert.Nil(t, fo.Resampler)
}

// TestLoad_Partial: omitted fields keep their defaults.
func TestLoad_Partial(t *testing.T) {
	path := writeFile(t, "run.json", `{
  "seed": 7,
  "walks": {"draws": 500, "policy": "survivors"},
  "volatility": {"particles": 64}
}`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	want := config.Default()
	want.Seed = 7
	want.Walks.Draws = 500
	want.Walks.Policy = "survivors"
	want.Volatility.Particles = 64
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}

	opts, err := cfg.PartitionOptions()
	require.NoError(t, err)
	assert.Equal(t, partition.Survivors, opts.Policy)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name  string
		path  func(t *testing.T) string
		check func(t *testing.T, err error)
	}{
		{
			"WrongExtension",
			func(t *testing.T) string { return writeFile(t, "run.yaml", "{}") },
			func(t *testing.T, err error) { assert.ErrorIs(t, err, config.ErrInvalidConfig) },
		},
		{
			"Missing",
			func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.json") },
			func(t *testing.T, err error) { assert.True(t, errors.Is(err, fs.ErrNotExist)) },
		},
		{
			"TooLarge",
			func(t *testing.T) string {
				return writeFile(t, "big.json", `{"output_dir":"`+strings.Repeat("x", 1<<20)+`"}`)
			},
			func(t *testing.T, err error) {
				assert.ErrorIs(t, err, config.ErrInvalidConfig)
				assert.Contains(t, err.Error(), "too large")
			},
		},
		{
			"Malformed",
			func(t *testing.T) string { return writeFile(t, "bad.json", `{"seed":`) },
			func(t *testing.T, err error) { assert.ErrorIs(t, err, config.ErrInvalidConfig) },
		},
		{
			"Invalid",
			func(t *testing.T) string { return writeFile(t, "phi.json", `{"volatility":{"phi":1.5}}`) },
			func(t *testing.T, err error) {
				assert.ErrorIs(t, err, config.ErrInvalidConfig)
				assert.Contains(t, err.Error(), "phi")
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(tc.path(t))
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"EmptyRange", func(c *config.Config) { c.Walks.Stop = c.Walks.Start }},
		{"ZeroStart", func(c *config.Config) { c.Walks.Start = 0 }},
		{"ZeroStep", func(c *config.Config) { c.Walks.Step = 0 }},
		{"ZeroDraws", func(c *config.Config) { c.Walks.Draws = 0 }},
		{"NegativeWalkWorkers", func(c *config.Config) { c.Walks.Workers = -2 }},
		{"NegativeDistinct", func(c *config.Config) { c.Walks.DistinctBelow = -1 }},
		{"UnknownPolicy", func(c *config.Config) { c.Walks.Policy = "median" }},
		{"NegativeSigma", func(c *config.Config) { c.Volatility.Sigma = -1 }},
		{"NaNGamma", func(c *config.Config) { c.Volatility.Gamma = math.NaN() }},
		{"ZeroHorizon", func(c *config.Config) { c.Volatility.Horizon = 0 }},
		{"ZeroParticles", func(c *config.Config) { c.Volatility.Particles = 0 }},
		{"NegativeFilterWorkers", func(c *config.Config) { c.Volatility.Workers = -1 }},
		{"NoOutputDir", func(c *config.Config) { c.OutputDir = " " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := config.Default()
	err := cfg.ApplyEnv(env(map[string]string{
		"LVSIS_SEED":       "99",
		"LVSIS_DRAWS":      " 1000 ",
		"LVSIS_WORKERS":    "3",
		"LVSIS_PARTICLES":  "50",
		"LVSIS_HORIZON":    "",
		"LVSIS_POLICY":     "survivors",
		"LVSIS_OUTPUT_DIR": "/tmp/lvsis",
		"SEED":             "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 1000, cfg.Walks.Draws)
	assert.Equal(t, 3, cfg.Walks.Workers)
	assert.Equal(t, 3, cfg.Volatility.Workers)
	assert.Equal(t, 50, cfg.Volatility.Particles)
	assert.Equal(t, 100, cfg.Volatility.Horizon, "empty value is ignored")
	assert.Equal(t, "survivors", cfg.Walks.Policy)
	assert.Equal(t, "/tmp/lvsis", cfg.OutputDir)
	assert.NoError(t, cfg.Validate())
}

// TestApplyEnv_SpecificWorkers sets each stage's pool separately.
func TestApplyEnv_SpecificWorkers(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv(env(map[string]string{
		"LVSIS_WALK_WORKERS":   "8",
		"LVSIS_FILTER_WORKERS": "2",
	})))
	assert.Equal(t, 8, cfg.Walks.Workers)
	assert.Equal(t, 2, cfg.Volatility.Workers)
}

func TestApplyEnv_Malformed(t *testing.T) {
	for _, kv := range [][2]string{
		{"LVSIS_SEED", "-1"},
		{"LVSIS_DRAWS", "many"},
		{"LVSIS_PARTICLES", "1.5"},
	} {
		cfg := config.Default()
		err := cfg.ApplyEnv(env(map[string]string{kv[0]: kv[1]}))
		assert.ErrorIs(t, err, config.ErrInvalidConfig, kv[0])
	}
}
