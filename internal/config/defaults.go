package config

// Default configuration values.
const (
	DefaultBemjsonSrc  = "pages/index/index.bemjson.js"
	DefaultParallelism = 8
	DefaultDebounceMS  = 100
)

// DefaultLevels returns the conventional common/desktop level pair.
func DefaultLevels() []string {
	return []string{"common.blocks", "desktop.blocks"}
}

// ApplyDefaults applies default values to a ProjectConfig.
func ApplyDefaults(c *ProjectConfig) {
	if c == nil {
		return
	}
	if c.BemjsonSrc == "" {
		c.BemjsonSrc = DefaultBemjsonSrc
	}
	if len(c.Levels) == 0 {
		c.Levels = DefaultLevels()
	}
	if c.Parallelism == 0 {
		c.Parallelism = DefaultParallelism
	}
}
