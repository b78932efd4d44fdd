package commands

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bemdeps/internal/cli/config"
	"github.com/leapstack-labs/bemdeps/internal/cli/output"
	intconfig "github.com/leapstack-labs/bemdeps/internal/config"
	"github.com/leapstack-labs/bemdeps/internal/engine"
	"github.com/leapstack-labs/bemdeps/pkg/core"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cc := NewCommandContextWithoutEngine(cmd)

	if err := cc.Cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cc.Cfg.ValidateBaseDir(); err != nil {
		return nil, err
	}

	eng, err := createEngine(cc.Cfg, cc.Logger)
	if err != nil {
		return nil, err
	}
	cc.Engine = eng

	return cc, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that must run before a project is set up.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	levels := intconfig.DefaultLevels()
	if v := os.Getenv("BEMDEPS_LEVELS"); v != "" {
		levels = strings.Split(v, ",")
	}
	parallelism := intconfig.DefaultParallelism
	if v, err := strconv.Atoi(os.Getenv("BEMDEPS_PARALLELISM")); err == nil {
		parallelism = v
	}

	return &config.Config{
		BaseDir:      os.Getenv("BEMDEPS_BASE_DIR"),
		BemjsonSrc:   getEnvOrDefault("BEMDEPS_BEMJSON_SRC", config.DefaultBemjsonSrc),
		Levels:       levels,
		Parallelism:  parallelism,
		Verbose:      os.Getenv("BEMDEPS_VERBOSE") == "true",
		OutputFormat: os.Getenv("BEMDEPS_OUTPUT"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	return engine.New(engine.Config{
		BaseDir:     cfg.BaseDir,
		BemjsonSrc:  cfg.BemjsonSrc,
		Levels:      core.Levels(cfg.Levels...),
		Parallelism: cfg.Parallelism,
		Logger:      logger,
	})
}
