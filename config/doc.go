// Package config holds the run-level configuration of the lvsis command:
// the random seed, the self-avoiding-walk length sweep, the stochastic
// volatility model and filter, and the output directory.
//
// Values come from three layers, later layers winning:
//
//  1. Default(), which reproduces the reference study;
//  2. an optional JSON file read by Load (partial files are fine);
//  3. LVSIS_* environment variables applied by ApplyEnv.
//
// Validation and parse failures wrap ErrInvalidConfig; file system errors
// are returned wrapped as they are. Validate runs before any sampling starts.
package config
