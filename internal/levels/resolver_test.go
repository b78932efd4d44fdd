package levels

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/leapstack-labs/bemdeps/internal/testutil"
	"github.com/leapstack-labs/bemdeps/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/project"

func mapProber(files ...string) FSProber {
	fsys := fstest.MapFS{}
	for _, f := range files {
		fsys[f] = &fstest.MapFile{Data: []byte("/* css */")}
	}
	return FSProber{FS: fsys, Root: root}
}

func abs(rel string) string {
	return filepath.Join(root, rel)
}

func TestResolveDirectories(t *testing.T) {
	prober := mapProber(
		"L1/A/A.css",
		"L2/B/B.css",
		"L1/C/C.css",
		"L2/C/C.css",
	)

	tests := []struct {
		name       string
		components []string
		levels     []core.Level
		want       []string
	}{
		{
			name:       "union across levels",
			components: []string{"A", "B"},
			levels:     core.Levels("L1", "L2"),
			want:       []string{abs("L1/A"), abs("L2/B")},
		},
		{
			name:       "component-major level-minor",
			components: []string{"C", "A"},
			levels:     core.Levels("L1", "L2"),
			want:       []string{abs("L1/C"), abs("L2/C"), abs("L1/A")},
		},
		{
			name:       "swapping levels swaps order",
			components: []string{"C", "A"},
			levels:     core.Levels("L2", "L1"),
			want:       []string{abs("L2/C"), abs("L1/C"), abs("L1/A")},
		},
		{
			name:       "missing component contributes nothing",
			components: []string{"missing", "B"},
			levels:     core.Levels("L1", "L2"),
			want:       []string{abs("L2/B")},
		},
		{
			name:       "missing level contributes nothing",
			components: []string{"A"},
			levels:     core.Levels("L0", "L1"),
			want:       []string{abs("L1/A")},
		},
		{
			name:       "no components",
			components: nil,
			levels:     core.Levels("L1"),
			want:       []string{},
		},
		{
			name:       "no levels",
			components: []string{"A"},
			levels:     nil,
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, parallelism := range []int{1, 8} {
				r := New(prober, WithParallelism(parallelism), WithLogger(testutil.NewTestLogger(t)))
				got, err := r.ResolveDirectories(context.Background(), tt.components, tt.levels, root)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got, "parallelism=%d", parallelism)
			}
		})
	}
}

func TestResolveStylesheets(t *testing.T) {
	prober := mapProber(
		"L1/A/A.css",
		"L2/A/other.css",
		"L2/B/B.css",
	)
	r := New(prober)

	dirs := []string{abs("L1/A"), abs("L2/A"), abs("L2/B")}
	got, err := r.ResolveStylesheets(context.Background(), dirs)
	require.NoError(t, err)

	// L2/A has a stylesheet, but not one named after the component.
	assert.Equal(t, []string{abs("L1/A/A.css"), abs("L2/B/B.css")}, got)

	for _, css := range got {
		assert.Contains(t, dirs, filepath.Dir(css), "stylesheet %s has no matching directory", css)
	}
}

func TestResolveStylesheets_Empty(t *testing.T) {
	got, err := New(mapProber()).ResolveStylesheets(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolver_ReprobesEveryCall(t *testing.T) {
	var calls atomic.Int32
	exists := false
	r := New(ProberFunc(func(string) bool {
		calls.Add(1)
		return exists
	}))

	first, err := r.ResolveDirectories(context.Background(), []string{"A"}, core.Levels("L1"), root)
	require.NoError(t, err)
	assert.Empty(t, first)

	exists = true
	second, err := r.ResolveDirectories(context.Background(), []string{"A"}, core.Levels("L1"), root)
	require.NoError(t, err)
	assert.Equal(t, []string{abs("L1/A")}, second)
	assert.Equal(t, int32(2), calls.Load())
}

func TestResolver_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, parallelism := range []int{1, 4} {
		r := New(mapProber("L1/A/A.css"), WithParallelism(parallelism))
		got, err := r.ResolveDirectories(ctx, []string{"A"}, core.Levels("L1"), root)
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, got)
	}
}

func TestResolver_AcceptsFilesAsDirectories(t *testing.T) {
	// Any existing path counts, not only directories.
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "L1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "L1", "A"), []byte("x"), 0o600))

	got, err := New(nil).ResolveDirectories(context.Background(), []string{"A"}, core.Levels("L1"), tmp)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmp, "L1", "A")}, got)
}

func TestFSProber_OutsideRoot(t *testing.T) {
	p := mapProber("L1/A/A.css")
	assert.True(t, p.Exists(abs("L1/A")))
	assert.False(t, p.Exists("/elsewhere/L1/A"))
	assert.False(t, p.Exists(abs("L1/B")))
}

func TestStylesheetPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/p", "L1", "button", "button.css"), StylesheetPath(filepath.Join("/p", "L1", "button")))
}
