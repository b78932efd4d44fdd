package core

// Level is an override root, relative to the project base directory
// (e.g. "common.blocks", "desktop.blocks").
type Level string

// Levels converts plain strings into levels, keeping their order.
func Levels(names ...string) []Level {
	levels := make([]Level, len(names))
	for i, n := range names {
		levels[i] = Level(n)
	}
	return levels
}

// Params describes a single resolution request.
type Params struct {
	// BaseDir is the project root. Levels and BemjsonSrc are resolved against it.
	// Empty means the process working directory.
	BaseDir string `json:"baseDir,omitempty"`

	// BemjsonSrc is the description source path, relative to BaseDir.
	BemjsonSrc string `json:"bemjsonSrc"`

	// Levels are probed in the given order; matches from every level are kept.
	Levels []Level `json:"levels"`
}

// Result is the outcome of a resolution.
// Both slices are ordered component-major, level-minor.
type Result struct {
	// CSS holds absolute paths of existing per-component stylesheets.
	CSS []string `json:"css"`
	// Dirs holds absolute paths of existing component directories.
	Dirs []string `json:"dirs"`
}

// Empty reports whether the result references no files at all.
func (r *Result) Empty() bool {
	return r == nil || (len(r.CSS) == 0 && len(r.Dirs) == 0)
}
