package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(mode OutputMode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestMode(t *testing.T) {
	tests := []struct {
		in   string
		want OutputMode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"text", ModeText},
		{"TEXT", ModeText},
		{"markdown", ModeMarkdown},
		{"md", ModeMarkdown},
		{" json ", ModeJSON},
		{"yaml", ModeAuto},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Mode(tt.in))
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{"auto on tty", ModeAuto, true, ModeText},
		{"auto piped", ModeAuto, false, ModeMarkdown},
		{"explicit text piped", ModeText, false, ModeText},
		{"explicit markdown on tty", ModeMarkdown, true, ModeMarkdown},
		{"json", ModeJSON, true, ModeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_NonFileIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestRenderer_Header(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown, false)
	r.Header(2, "Stylesheets")
	assert.Equal(t, "## Stylesheets\n\n", out.String())

	r, out, _ = newTestRenderer(ModeText, false)
	r.Header(1, "Stylesheets")
	assert.Equal(t, "Stylesheets\n", out.String())
}

func TestRenderer_StatusAndMessages(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText, false)

	r.StatusLine("bemdeps.yaml", "success", "")
	r.StatusLine("touch.blocks", "failed", "missing")
	r.StatusLine("footer", "skipped", "")
	r.Success("done")
	r.Warning("careful")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "  ✓ bemdeps.yaml", lines[0])
	assert.Equal(t, "  ✗ touch.blocks missing", lines[1])
	assert.Equal(t, "  - footer", lines[2])
	assert.Equal(t, "✓ done", lines[3])
	assert.Equal(t, "! careful\n", errOut.String())
}

func TestRenderer_Table(t *testing.T) {
	header := []string{"Component", "Level"}
	rows := [][]string{{"page", "common.blocks"}, {"header", "desktop.blocks"}}

	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown, false)
		r.Table(header, rows)
		assert.Contains(t, out.String(), "| page | common.blocks |")
		assert.Contains(t, out.String(), "| header | desktop.blocks |")
	})

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, false)
		r.Table(header, rows)
		assert.Contains(t, out.String(), "desktop.blocks")
		assert.Contains(t, out.String(), "│")
	})
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, false)
	require.NoError(t, r.JSON(map[string][]string{"css": {"a.css"}}))
	assert.JSONEq(t, `{"css":["a.css"]}`, out.String())
}

func TestRenderer_NoColorWithoutTTY(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText, false)
	r.Println(r.Styles().Error.Render("boom"))
	assert.Equal(t, "boom\n", out.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Title", FormatHeader(3, "Title"))
	assert.Equal(t, "- **Source:** index.js", FormatKeyValue("Source", "index.js"))
	assert.Equal(t, "`x`", FormatCode("x"))
	assert.Equal(t, "_none_", FormatList(nil))
	assert.Equal(t, "- a\n- b", FormatList([]string{"a", "b"}))
}
