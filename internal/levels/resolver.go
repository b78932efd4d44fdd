// Package levels resolves component names against ordered override levels.
//
// For every component and every level (component-major, level-minor) the
// resolver probes baseDir/level/component and keeps the candidates that
// exist. Stylesheets are then probed as dir/<component>.css for each
// surviving directory. Absence is the common case and is never an error.
package levels

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/leapstack-labs/bemdeps/pkg/core"
	"golang.org/x/sync/errgroup"
)

// StylesheetExt is the extension of a component's own stylesheet.
const StylesheetExt = ".css"

// Resolver expands component names into existing directories and stylesheets.
type Resolver struct {
	prober      Prober
	parallelism int
	logger      *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithParallelism bounds the number of concurrent probes. Values below 2
// probe sequentially.
func WithParallelism(n int) Option {
	return func(r *Resolver) {
		r.parallelism = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a resolver over the given prober. A nil prober probes the OS filesystem.
func New(p Prober, opts ...Option) *Resolver {
	if p == nil {
		p = OSProber{}
	}
	r := &Resolver{
		prober:      p,
		parallelism: 1,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DirectoryCandidates lists baseDir/level/component for every component and
// level, component-major.
func DirectoryCandidates(components []string, levels []core.Level, baseDir string) []string {
	candidates := make([]string, 0, len(components)*len(levels))
	for _, component := range components {
		for _, level := range levels {
			candidates = append(candidates, filepath.Join(baseDir, string(level), component))
		}
	}
	return candidates
}

// StylesheetPath returns dir/<base(dir)>.css. Directories are named after
// their component, so the last segment is the component name.
func StylesheetPath(dir string) string {
	return filepath.Join(dir, filepath.Base(dir)+StylesheetExt)
}

// ResolveDirectories returns the existing component directories across all
// levels, component-major then level-minor. components is expected to be
// de-duplicated already.
func (r *Resolver) ResolveDirectories(ctx context.Context, components []string, levels []core.Level, baseDir string) ([]string, error) {
	candidates := DirectoryCandidates(components, levels, baseDir)
	dirs, err := r.probeAll(ctx, candidates)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("resolved directories",
		"components", len(components),
		"levels", len(levels),
		"candidates", len(candidates),
		"found", len(dirs))
	return dirs, nil
}

// ResolveStylesheets returns the existing stylesheet of each directory, in directory order.
func (r *Resolver) ResolveStylesheets(ctx context.Context, dirs []string) ([]string, error) {
	candidates := make([]string, len(dirs))
	for i, dir := range dirs {
		candidates[i] = StylesheetPath(dir)
	}
	css, err := r.probeAll(ctx, candidates)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("resolved stylesheets", "dirs", len(dirs), "found", len(css))
	return css, nil
}

// probeAll keeps the candidates that exist, in candidate order.
func (r *Resolver) probeAll(ctx context.Context, candidates []string) ([]string, error) {
	found := make([]bool, len(candidates))

	if r.parallelism < 2 {
		for i, c := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			found[i] = r.prober.Exists(c)
		}
	} else {
		// Each probe owns its slot in found, so output order does not depend on scheduling.
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.parallelism)
		for i, c := range candidates {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				found[i] = r.prober.Exists(c)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	out := make([]string, 0, len(candidates))
	for i, ok := range found {
		if ok {
			out = append(out, candidates[i])
		}
	}
	return out, nil
}
