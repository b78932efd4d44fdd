// Package config provides configuration management for the bemdeps CLI.
//
// It layers the shared project file (see internal/config) with environment
// variables and command-line flags, and carries the CLI-only settings such as
// output format, verbosity and watch behaviour.
package config

import (
	sharedcfg "github.com/leapstack-labs/bemdeps/internal/config"
	"github.com/leapstack-labs/bemdeps/pkg/core"
)

// WatchConfig holds configuration for the watch command.
type WatchConfig struct {
	DebounceMS int `koanf:"debounce_ms"`
}

// DefaultWatchConfig returns a WatchConfig with default values.
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{DebounceMS: sharedcfg.DefaultDebounceMS}
}

// GetWatchConfig returns the watch config with defaults applied for any unset values.
func (c *Config) GetWatchConfig() *WatchConfig {
	if c.Watch == nil {
		return DefaultWatchConfig()
	}
	w := c.Watch
	if w.DebounceMS <= 0 {
		w.DebounceMS = sharedcfg.DefaultDebounceMS
	}
	return w
}

// Config holds all CLI configuration options.
type Config struct {
	// ProjectRoot is the inferred directory holding bemdeps.yaml (or the CWD).
	ProjectRoot string `koanf:"-"`

	BaseDir      string       `koanf:"base_dir"`
	BemjsonSrc   string       `koanf:"bemjson_src"`
	Levels       []string     `koanf:"levels"`
	Parallelism  int          `koanf:"parallelism"`
	Verbose      bool         `koanf:"verbose"`
	OutputFormat string       `koanf:"output"`
	Watch        *WatchConfig `koanf:"watch"`
}

// Params converts the loaded configuration into resolution parameters.
func (c *Config) Params() core.Params {
	return core.Params{
		BaseDir:    c.BaseDir,
		BemjsonSrc: c.BemjsonSrc,
		Levels:     core.Levels(c.Levels...),
	}
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultBemjsonSrc  = sharedcfg.DefaultBemjsonSrc
	DefaultParallelism = sharedcfg.DefaultParallelism
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
