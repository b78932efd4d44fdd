package levels

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Prober answers whether a path exists. A missing path is a normal false,
// never an error. Implementations must be safe for concurrent use.
type Prober interface {
	Exists(path string) bool
}

// ProberFunc adapts a plain function to the Prober interface.
type ProberFunc func(path string) bool

// Exists calls f(path).
func (f ProberFunc) Exists(path string) bool {
	return f(path)
}

// OSProber probes the real filesystem. Files and directories both count.
type OSProber struct{}

// Exists reports whether os.Stat succeeds for path.
func (OSProber) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FSProber probes an fs.FS mounted at Root, so that absolute paths under
// Root map onto names inside FS.
type FSProber struct {
	FS   fs.FS
	Root string
}

// Exists reports whether path, relative to Root, is present in FS.
// Paths outside Root never exist.
func (p FSProber) Exists(path string) bool {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}
	_, err = fs.Stat(p.FS, rel)
	return err == nil
}
