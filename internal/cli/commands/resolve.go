package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bemdeps/internal/cli/output"
	"github.com/leapstack-labs/bemdeps/internal/levels"
	"github.com/leapstack-labs/bemdeps/pkg/core"
)

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	var relative bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve component directories and stylesheets",
		Long: `Read the bemjson source, extract every referenced block and look it up
in each configured level. Prints every existing component directory and the
stylesheet inside it, ordered by component first and level second.

Output adapts to the environment:
  - Terminal (TTY): Styled table
  - Piped/redirected: Markdown (agent-friendly)
  - --output json: {"css": [...], "dirs": [...]}`,
		Example: `  # Resolve using bemdeps.yaml
  bemdeps resolve

  # Resolve another page against explicit levels
  bemdeps resolve --src pages/about/about.bemjson.js --level common.blocks --level touch.blocks

  # Machine-readable output with paths relative to the base directory
  bemdeps resolve -o json --relative`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd, relative)
		},
	}

	cmd.Flags().BoolVar(&relative, "relative", false, "Print paths relative to the base directory")

	return cmd
}

func runResolve(cmd *cobra.Command, relative bool) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	result, err := cc.Engine.Resolve(cmd.Context())
	if err != nil {
		return err
	}

	baseDir := cc.Engine.BaseDir()
	if relative {
		result = relativeResult(baseDir, result)
		baseDir = ""
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeMarkdown:
		renderResolveMarkdown(r, baseDir, result)
	default:
		renderResolveText(r, baseDir, result)
	}
	return nil
}

// resolvedEntry is one component directory with its level and stylesheet.
type resolvedEntry struct {
	Level      string
	Component  string
	Dir        string
	Stylesheet string
}

// describeResult splits every directory into level and component and pairs
// it with its stylesheet, if one was resolved.
func describeResult(baseDir string, result *core.Result) []resolvedEntry {
	css := make(map[string]bool, len(result.CSS))
	for _, c := range result.CSS {
		css[c] = true
	}

	entries := make([]resolvedEntry, 0, len(result.Dirs))
	for _, dir := range result.Dirs {
		rel := dir
		if baseDir != "" {
			if r, err := filepath.Rel(baseDir, dir); err == nil {
				rel = r
			}
		}
		entry := resolvedEntry{
			Level:     filepath.Dir(rel),
			Component: filepath.Base(rel),
			Dir:       dir,
		}
		if sheet := levels.StylesheetPath(dir); css[sheet] {
			entry.Stylesheet = sheet
		}
		entries = append(entries, entry)
	}
	return entries
}

func relativeResult(baseDir string, result *core.Result) *core.Result {
	rel := func(paths []string) []string {
		out := make([]string, len(paths))
		for i, p := range paths {
			if r, err := filepath.Rel(baseDir, p); err == nil {
				out[i] = r
			} else {
				out[i] = p
			}
		}
		return out
	}
	return &core.Result{CSS: rel(result.CSS), Dirs: rel(result.Dirs)}
}

func resolveRows(entries []resolvedEntry) [][]string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		sheet := "-"
		if e.Stylesheet != "" {
			sheet = filepath.Base(e.Stylesheet)
		}
		rows[i] = []string{e.Component, e.Level, sheet}
	}
	return rows
}

func renderResolveText(r *output.Renderer, baseDir string, result *core.Result) {
	styles := r.Styles()
	if result.Empty() {
		r.Println(styles.Muted.Render("No component directories found."))
		return
	}
	entries := describeResult(baseDir, result)

	r.Table([]string{"Component", "Level", "Stylesheet"}, resolveRows(entries))
	r.Println("")
	r.Println(styles.Muted.Render(fmt.Sprintf("%d directories, %d stylesheets", len(result.Dirs), len(result.CSS))))
}

func renderResolveMarkdown(r *output.Renderer, baseDir string, result *core.Result) {
	r.Header(1, "Resolution")

	entries := describeResult(baseDir, result)
	if len(entries) > 0 {
		r.Table([]string{"Component", "Level", "Stylesheet"}, resolveRows(entries))
	}

	r.Header(2, fmt.Sprintf("Stylesheets (%d)", len(result.CSS)))
	r.Println(output.FormatList(codeList(result.CSS)))
	r.Println("")

	r.Header(2, fmt.Sprintf("Directories (%d)", len(result.Dirs)))
	r.Println(output.FormatList(codeList(result.Dirs)))
}

func codeList(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = output.FormatCode(s)
	}
	return out
}
