package commands

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bemdeps/internal/cli/output"
	"github.com/leapstack-labs/bemdeps/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-resolve whenever the source or a level changes",
		Long: `Resolve once, then watch the bemjson source and every level root and
resolve again after each burst of changes. Stops on Ctrl+C.

The quiet period defaults to watch.debounce_ms from bemdeps.yaml.`,
		Example: `  bemdeps watch
  bemdeps watch --debounce 500ms -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before re-resolving (overrides watch.debounce_ms)")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, debounce time.Duration) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if debounce <= 0 {
		debounce = time.Duration(cc.Cfg.GetWatchConfig().DebounceMS) * time.Millisecond
	}

	resolveOnce := func(ctx context.Context) {
		if err := renderWatchResult(ctx, cc); err != nil {
			cc.Renderer.Warning(err.Error())
		}
	}

	resolveOnce(ctx)

	w := watch.New(cc.Engine.SourcePath(), cc.Engine.LevelDirs(),
		watch.WithDebounce(debounce),
		watch.WithLogger(cc.Logger),
	)

	if cc.Renderer.EffectiveMode() != output.ModeJSON {
		cc.Renderer.Println(cc.Renderer.Styles().Muted.Render(
			fmt.Sprintf("Watching %s and %d levels (Ctrl+C to stop)", filepath.Base(cc.Engine.SourcePath()), len(cc.Engine.LevelDirs()))))
	}

	return w.Run(ctx, func(ctx context.Context, changed []string) {
		cc.Logger.Info("change detected", "paths", changed)
		resolveOnce(ctx)
	})
}

func renderWatchResult(ctx context.Context, cc *CommandContext) error {
	result, err := cc.Engine.Resolve(ctx)
	if err != nil {
		return err
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeMarkdown:
		renderResolveMarkdown(r, cc.Engine.BaseDir(), result)
	default:
		renderResolveText(r, cc.Engine.BaseDir(), result)
	}
	return nil
}
