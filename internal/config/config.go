// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
//
// The rating doctrine itself (formula coefficients, mistake caps, role
// weights) is fixed in code and deliberately not configurable.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir is the directory the session collections persist under.
	DataDir string `koanf:"data_dir"`

	// MaxListLimit caps GET /mprs?limit.
	MaxListLimit int `koanf:"max_list_limit"`

	// SeedRoster seeds two placeholder players when no roster file
	// exists yet, mirroring the reference behavior.
	SeedRoster bool `koanf:"seed_roster"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":9080",
		DataDir:      "data",
		MaxListLimit: 500,
		SeedRoster:   true,
	}
}
