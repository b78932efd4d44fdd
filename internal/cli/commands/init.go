package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bemdeps/internal/cli/output"
	intconfig "github.com/leapstack-labs/bemdeps/internal/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var template string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new bemdeps project",
		Long: `Initialize a new bemdeps project with a configuration file, two levels
and a page description.

Templates:
  minimal  bemdeps.yaml, empty common.blocks/ and desktop.blocks/, one page
  example  a page with header, link and footer blocks, where the header is
           redefined on the desktop level`,
		Example: `  # Initialize in current directory
  bemdeps init

  # Initialize a working example in a new directory
  bemdeps init my-site --template example

  # Force overwrite existing files
  bemdeps init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

			return runInit(r, dir, template, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().StringVarP(&template, "template", "t", "minimal", "Project template ("+strings.Join(templateNames, "|")+")")
	_ = cmd.RegisterFlagCompletionFunc("template", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return templateNames, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runInit(r *output.Renderer, dir, template string, force bool) error {
	if !slices.Contains(templateNames, template) {
		return fmt.Errorf("unknown template %q (available: %s)", template, strings.Join(templateNames, ", "))
	}

	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if intconfig.ConfigExistsIn(dir) && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", intconfig.ConfigFileName)
	}

	if err := copyTemplate(template, dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	files, err := listTemplateFiles(template)
	if err != nil {
		return fmt.Errorf("failed to list template files: %w", err)
	}
	groups := groupTemplateFiles(files)

	for _, g := range []struct{ key, title string }{
		{"config", "Configuration"},
		{"levels", "Levels"},
		{"pages", "Pages"},
	} {
		if len(groups[g.key]) == 0 {
			continue
		}
		r.Header(2, g.title)
		for _, f := range groups[g.key] {
			r.StatusLine(filepath.FromSlash(f), "success", "")
		}
		r.Println("")
	}

	r.Success("bemdeps project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  bemdeps components   List blocks used by the page")
	r.Println("  bemdeps resolve      Resolve block directories and stylesheets")
	r.Println("  bemdeps doctor       Check levels and stylesheets")
	r.Println("  bemdeps watch        Re-resolve on every change")

	return nil
}
