package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bemdeps/internal/cli/output"
)

// NewComponentsCommand creates the components command.
func NewComponentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "components",
		Aliases: []string{"blocks"},
		Short:   "List blocks referenced by the bemjson source",
		Long: `Print the distinct blocks referenced anywhere in the bemjson source,
in the order they first appear. Levels are not consulted.`,
		Example: `  bemdeps components
  bemdeps components --src pages/about/about.bemjson.js -o json`,
		Args: cobra.NoArgs,
		RunE: runComponents,
	}

	return cmd
}

func runComponents(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	components, err := cc.Engine.Components(cmd.Context())
	if err != nil {
		return err
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(struct {
			Source     string   `json:"source"`
			Components []string `json:"components"`
		}{
			Source:     cc.Engine.SourcePath(),
			Components: components,
		})
	case output.ModeMarkdown:
		r.Header(1, fmt.Sprintf("Components (%d)", len(components)))
		r.Println(output.FormatKeyValue("Source", output.FormatCode(cc.Engine.SourcePath())))
		r.Println("")
		r.Println(output.FormatList(components))
	default:
		styles := r.Styles()
		r.Println(styles.Header1.Render(fmt.Sprintf("Components (%d)", len(components))))
		r.Println(styles.Muted.Render(cc.Engine.SourcePath()))
		for i, c := range components {
			r.Printf("  %2d. %s\n", i+1, c)
		}
	}
	return nil
}
