// Package config provides shared project configuration for bemdeps.
// It is decoupled from CLI concerns: the engine, the watcher and tests can load
// a project's bemdeps.yaml without pulling in cobra or flag handling.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/bemdeps/pkg/core"
)

// ProjectConfig is the on-disk shape of bemdeps.yaml.
type ProjectConfig struct {
	BemjsonSrc  string   `koanf:"bemjson_src"`
	Levels      []string `koanf:"levels"`
	BaseDir     string   `koanf:"base_dir"`
	Parallelism int      `koanf:"parallelism"`
}

// ApplyDefaults fills unset fields with the package defaults.
func (c *ProjectConfig) ApplyDefaults() {
	ApplyDefaults(c)
}

// Params converts the project config into resolution parameters.
func (c *ProjectConfig) Params() core.Params {
	return core.Params{
		BaseDir:    c.BaseDir,
		BemjsonSrc: c.BemjsonSrc,
		Levels:     core.Levels(c.Levels...),
	}
}

// ValidateLevels checks that at least one level is configured and that no
// level is blank or repeated.
func ValidateLevels(levels []string) error {
	if len(levels) == 0 {
		return errors.New("at least one level is required")
	}
	seen := make(map[string]bool, len(levels))
	for i, l := range levels {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("level %d is empty", i)
		}
		if seen[l] {
			return fmt.Errorf("level %q is listed more than once", l)
		}
		seen[l] = true
	}
	return nil
}
