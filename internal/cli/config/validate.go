package config

import (
	"fmt"
	"os"

	intconfig "github.com/leapstack-labs/bemdeps/internal/config"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.BemjsonSrc == "" {
		return fmt.Errorf("bemjson_src is required")
	}
	if err := intconfig.ValidateLevels(c.Levels); err != nil {
		return fmt.Errorf("invalid levels: %w", err)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}
	return nil
}

// ValidateBaseDir checks that the base directory exists. An empty base
// directory means the working directory.
// Missing level roots are not an error, they simply resolve nothing.
func (c *Config) ValidateBaseDir() error {
	if c.BaseDir == "" {
		return nil
	}
	info, err := os.Stat(c.BaseDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("base directory does not exist: %s\nHint: Create the directory or use --base-dir to specify a different path", c.BaseDir)
	}
	if err != nil {
		return fmt.Errorf("failed to stat base directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("base directory is not a directory: %s", c.BaseDir)
	}
	return nil
}
