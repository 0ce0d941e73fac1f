// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Scoring weights are deliberately
// absent: they are fixed domain policy, not configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// BenchmarkFile points at a YAML benchmark table. Empty means the
	// built-in default table.
	BenchmarkFile string `koanf:"benchmark_file"`

	// MinCalibrationDays is the tracked history required before the form
	// score leaves the calibration state.
	MinCalibrationDays int `koanf:"min_calibration_days"`

	// RecentWindowDays bounds the "current best" window of the evolution
	// scorer; PeakWindowDays bounds the historical peak window before it.
	RecentWindowDays int `koanf:"recent_window_days"`
	PeakWindowDays   int `koanf:"peak_window_days"`

	// CacheMaxEntries bounds the envelope cache. Zero disables the bound.
	CacheMaxEntries int `koanf:"cache_max_entries"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9090",
		BenchmarkFile:      "",
		MinCalibrationDays: 7,
		RecentWindowDays:   30,
		PeakWindowDays:     90,
		CacheMaxEntries:    10_000,
	}
}
