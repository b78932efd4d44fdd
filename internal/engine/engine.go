// Package engine runs a single bemjson resolution: it reads the description
// source, extracts the referenced components and resolves them against the
// configured levels.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/bemdeps/internal/levels"
	"github.com/leapstack-labs/bemdeps/internal/loader"
	"github.com/leapstack-labs/bemdeps/pkg/bemjson"
	"github.com/leapstack-labs/bemdeps/pkg/core"
)

// ErrNoSource is returned by New when no description source is configured.
var ErrNoSource = errors.New("bemjson source is required")

// Engine resolves one project configuration. It holds no state between
// calls; every Resolve re-reads the source and re-probes the filesystem.
type Engine struct {
	baseDir  string
	src      string
	levels   []core.Level
	resolver *levels.Resolver

	// Structured logger
	logger *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// BaseDir is the project root (empty for the working directory)
	BaseDir string
	// BemjsonSrc is the description source, relative to BaseDir
	BemjsonSrc string
	// Levels are the override roots, probed in order
	Levels []core.Level
	// Parallelism bounds concurrent existence probes (values below 2 probe sequentially)
	Parallelism int
	// Prober answers existence queries (optional, uses the OS filesystem if nil)
	Prober levels.Prober
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine. The base directory is made absolute so that every
// resolved path is absolute.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if cfg.BemjsonSrc == "" {
		return nil, ErrNoSource
	}

	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}
	baseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	logger.Debug("initializing engine", "base_dir", baseDir, "src", cfg.BemjsonSrc, "levels", len(cfg.Levels))

	return &Engine{
		baseDir: baseDir,
		src:     cfg.BemjsonSrc,
		levels:  append([]core.Level(nil), cfg.Levels...),
		resolver: levels.New(cfg.Prober,
			levels.WithParallelism(cfg.Parallelism),
			levels.WithLogger(logger),
		),
		logger: logger,
	}, nil
}

// BaseDir returns the absolute project root.
func (e *Engine) BaseDir() string {
	return e.baseDir
}

// SourcePath returns the absolute path of the description source.
func (e *Engine) SourcePath() string {
	if filepath.IsAbs(e.src) {
		return e.src
	}
	return filepath.Join(e.baseDir, e.src)
}

// LevelDirs returns the absolute path of every level, in probe order.
func (e *Engine) LevelDirs() []string {
	dirs := make([]string, len(e.levels))
	for i, l := range e.levels {
		dirs[i] = filepath.Join(e.baseDir, string(l))
	}
	return dirs
}

// Components reads the description source and returns the distinct
// components it references, in first-occurrence order.
func (e *Engine) Components(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, err := loader.ReadDescription(e.baseDir, e.src)
	if err != nil {
		return nil, err
	}

	components, err := bemjson.ExtractComponents(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to extract components: %w", err)
	}
	return components, nil
}

// Resolve runs the full resolution. On error no partial result is returned.
func (e *Engine) Resolve(ctx context.Context) (*core.Result, error) {
	start := time.Now()
	logger := e.logger.With("run_id", uuid.New().String())

	components, err := e.Components(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("extracted components", "count", len(components))

	dirs, err := e.resolver.ResolveDirectories(ctx, components, e.levels, e.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directories: %w", err)
	}

	css, err := e.resolver.ResolveStylesheets(ctx, dirs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stylesheets: %w", err)
	}

	logger.Info("resolution completed",
		"components", len(components),
		"dirs", len(dirs),
		"css", len(css),
		"duration_ms", time.Since(start).Milliseconds())

	return &core.Result{CSS: css, Dirs: dirs}, nil
}
