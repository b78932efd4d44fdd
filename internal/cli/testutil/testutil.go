// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/bemdeps/internal/cli/output"
)

// ProjectConfig is the bemdeps.yaml written by SetupTestProject.
const ProjectConfig = `bemjson_src: pages/index/index.bemjson.js
levels:
  - common.blocks
  - desktop.blocks
parallelism: 4
`

// ProjectBemjson is the page description written by SetupTestProject.
// footer is referenced but defined on no level.
const ProjectBemjson = `[
  {
    block: 'page',
    content: [
      // header is redefined on the desktop level
      { block: 'header', content: { block: 'link' } },
      { block: 'footer' },
    ],
  },
]
`

// SetupTestProject creates a temporary project with two levels and a page.
//
//	common.blocks/page/page.css
//	common.blocks/header/header.css
//	common.blocks/link/            (no stylesheet)
//	desktop.blocks/header/header.css
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	dirs := []string{
		filepath.Join(tmpDir, "common.blocks", "page"),
		filepath.Join(tmpDir, "common.blocks", "header"),
		filepath.Join(tmpDir, "common.blocks", "link"),
		filepath.Join(tmpDir, "desktop.blocks", "header"),
		filepath.Join(tmpDir, "pages", "index"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	files := map[string]string{
		"bemdeps.yaml":                     ProjectConfig,
		"pages/index/index.bemjson.js":     ProjectBemjson,
		"common.blocks/page/page.css":      ".page {}\n",
		"common.blocks/header/header.css":  ".header {}\n",
		"desktop.blocks/header/header.css": ".header { width: 100%; }\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, filepath.FromSlash(name)), []byte(content), 0o600); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	return tmpDir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
	}

	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
