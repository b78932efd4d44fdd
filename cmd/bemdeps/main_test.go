// Package main provides tests for the bemdeps CLI.
package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bemdeps/internal/cli"
	"github.com/leapstack-labs/bemdeps/internal/cli/config"
	"github.com/leapstack-labs/bemdeps/internal/cli/testutil"
	"github.com/leapstack-labs/bemdeps/pkg/core"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bemdeps v")
}

func TestHelpCommand(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)

	for _, expected := range []string{"resolve", "components", "watch", "doctor", "init", "completion"} {
		assert.Contains(t, out, expected)
	}
}

func TestResolveEndToEnd(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	out, err := run(t, "resolve", "-o", "json")
	require.NoError(t, err)

	var result core.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Dirs, 4)
	assert.Len(t, result.CSS, 3)
	assert.Equal(t, "page.css", filepath.Base(result.CSS[0]))
}

func TestResolveFlagsOverrideConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	out, err := run(t, "resolve", "-o", "json", "--level", "desktop.blocks", "--relative")
	require.NoError(t, err)

	var result core.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{filepath.Join("desktop.blocks", "header")}, result.Dirs)
	assert.Equal(t, []string{filepath.Join("desktop.blocks", "header", "header.css")}, result.CSS)
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "bundle")
	require.Error(t, err)
}
