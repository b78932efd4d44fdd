// Package testutil provides shared test helpers: structured logging routed
// through testing.TB and on-disk level fixtures.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// WriteTree creates the given slash-separated paths under base. Paths ending
// in "/" become directories, everything else becomes a small file whose
// parent directories are created as needed.
func WriteTree(t testing.TB, base string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(base, filepath.FromSlash(p))
		if p[len(p)-1] == '/' {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("failed to create directory %s: %v", full, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", full, err)
		}
		if err := os.WriteFile(full, []byte("/* "+p+" */\n"), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", full, err)
		}
	}
}
