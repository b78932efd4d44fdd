package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// sourceImports maps each non-test Go file in dir to its import paths.
func sourceImports(t *testing.T, dir string) map[string][]string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	fset := token.NewFileSet()
	out := make(map[string][]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", name, err)
			continue
		}
		for _, imp := range f.Imports {
			out[name] = append(out[name], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return out
}

// TestLeafPackagesImportStdlibOnly keeps the shared vocabulary and the tree
// model free of third-party and internal imports. pkg/bemjson may use core.
func TestLeafPackagesImportStdlibOnly(t *testing.T) {
	tests := []struct {
		dir     string
		allowed map[string]bool
	}{
		{dir: ".", allowed: map[string]bool{}},
		{dir: "../bemjson", allowed: map[string]bool{
			"github.com/leapstack-labs/bemdeps/pkg/core": true,
		}},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(filepath.Clean(tt.dir)), func(t *testing.T) {
			for file, imports := range sourceImports(t, tt.dir) {
				for _, imp := range imports {
					if !strings.Contains(imp, ".") || tt.allowed[imp] {
						continue
					}
					t.Errorf("%s imports forbidden package: %s", file, imp)
				}
			}
		})
	}
}

// TestCoreDoesNotImportInternal verifies pkg/core never reaches into internal packages.
func TestCoreDoesNotImportInternal(t *testing.T) {
	for file, imports := range sourceImports(t, ".") {
		for _, imp := range imports {
			if strings.Contains(imp, "/internal/") {
				t.Errorf("%s imports internal package: %s (core must not import internal packages)", file, imp)
			}
		}
	}
}
