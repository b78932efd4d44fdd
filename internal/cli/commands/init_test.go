package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intconfig "github.com/leapstack-labs/bemdeps/internal/config"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string)
		args      []string
		wantErr   string
		wantFiles []string
	}{
		{
			name: "init empty directory",
			wantFiles: []string{
				"bemdeps.yaml",
				"common.blocks/.gitkeep",
				"desktop.blocks/.gitkeep",
				"pages/index/index.bemjson.js",
			},
		},
		{
			name: "init example template",
			args: []string{"--template", "example"},
			wantFiles: []string{
				"bemdeps.yaml",
				".gitignore",
				"common.blocks/page/page.css",
				"common.blocks/link/link.css",
				"desktop.blocks/header/header.css",
				"pages/index/index.bemjson.js",
			},
		},
		{
			name: "init into subdirectory",
			args: []string{"site"},
			wantFiles: []string{
				"site/bemdeps.yaml",
				"site/common.blocks",
			},
		},
		{
			name: "init existing config without force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "bemdeps.yaml"), []byte("existing"), 0o600))
			},
			wantErr: "already exists",
		},
		{
			name: "init existing config with force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "bemdeps.yaml"), []byte("existing"), 0o600))
			},
			args:      []string{"--force"},
			wantFiles: []string{"bemdeps.yaml", "common.blocks"},
		},
		{
			name:    "unknown template",
			args:    []string{"--template", "bootstrap"},
			wantErr: "unknown template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			t.Chdir(tmpDir)

			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			_, err := execute(t, NewInitCommand(), tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			for _, f := range tt.wantFiles {
				_, err := os.Stat(filepath.Join(tmpDir, filepath.FromSlash(f)))
				assert.NoError(t, err, "expected file/dir %q to exist", f)
			}
		})
	}
}

func TestInitCreatesLoadableConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	_, err := execute(t, NewInitCommand(), "--template", "example")
	require.NoError(t, err)

	cfg, err := intconfig.LoadFromDir(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "pages/index/index.bemjson.js", cfg.BemjsonSrc)
	assert.Equal(t, []string{"common.blocks", "desktop.blocks"}, cfg.Levels)
	assert.Equal(t, 8, cfg.Parallelism)
}

func TestInitExampleResolves(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	_, err := execute(t, NewInitCommand(), "--template", "example")
	require.NoError(t, err)

	loadProject(t, tmpDir, "json")
	out, err := execute(t, NewComponentsCommand())
	require.NoError(t, err)
	assert.Contains(t, out, `"components": [`)
	for _, block := range []string{"page", "header", "link", "footer"} {
		assert.Contains(t, out, `"`+block+`"`)
	}
}

func TestGroupTemplateFiles(t *testing.T) {
	groups := groupTemplateFiles([]string{
		"bemdeps.yaml",
		".gitignore",
		"common.blocks/page/page.css",
		"desktop.blocks/.gitkeep",
		"pages/index/index.bemjson.js",
	})

	assert.Equal(t, []string{"bemdeps.yaml", ".gitignore"}, groups["config"])
	assert.Equal(t, []string{"common.blocks/page/page.css", "desktop.blocks/.gitkeep"}, groups["levels"])
	assert.Equal(t, []string{"pages/index/index.bemjson.js"}, groups["pages"])
}

func TestRenameSpecialFiles(t *testing.T) {
	assert.Equal(t, ".gitignore", renameSpecialFiles("gitignore"))
	assert.Equal(t, "common.blocks/.gitkeep", renameSpecialFiles("common.blocks/gitkeep"))
	assert.Equal(t, "pages/index/index.bemjson.js", renameSpecialFiles("pages/index/index.bemjson.js"))
}
