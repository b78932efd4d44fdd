package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantOut []string
	}{
		{name: "default version", version: "0.1.0", wantOut: []string{"bemdeps v0.1.0", "esbuild"}},
		{name: "custom version", version: "1.2.3", wantOut: []string{"bemdeps v1.2.3"}},
		{name: "dev version", version: "dev", wantOut: []string{"bemdeps vdev"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewVersionCommand(tt.version))
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}
