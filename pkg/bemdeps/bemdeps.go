// Package bemdeps is the library entry point: given a bemjson source and an
// ordered list of levels, it returns the component directories and
// stylesheets a build must include.
//
//	res, err := bemdeps.GetFileNames(ctx, core.Params{
//		BemjsonSrc: "pages/index/index.bemjson.js",
//		Levels:     core.Levels("common.blocks", "desktop.blocks"),
//	})
package bemdeps

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/leapstack-labs/bemdeps/internal/config"
	"github.com/leapstack-labs/bemdeps/internal/engine"
	"github.com/leapstack-labs/bemdeps/pkg/core"
)

// GetFileNames resolves params against the filesystem. Paths in the result
// are absolute. BaseDir defaults to the process working directory.
func GetFileNames(ctx context.Context, params core.Params) (*core.Result, error) {
	eng, err := engine.New(engine.Config{
		BaseDir:    params.BaseDir,
		BemjsonSrc: params.BemjsonSrc,
		Levels:     params.Levels,
	})
	if err != nil {
		return nil, err
	}
	return eng.Resolve(ctx)
}

// ErrNoProjectConfig is returned by GetProjectFileNames when dir holds no
// bemdeps.yaml or bemdeps.yml.
var ErrNoProjectConfig = errors.New("no bemdeps config file found")

// GetProjectFileNames resolves the project whose config file lives in dir.
// A relative base_dir in the file is taken relative to dir.
func GetProjectFileNames(ctx context.Context, dir string) (*core.Result, error) {
	cfg, err := config.LoadFromDir(dir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w in %s", ErrNoProjectConfig, dir)
	}
	if err := config.ValidateLevels(cfg.Levels); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", dir, err)
	}

	params := cfg.Params()
	switch {
	case params.BaseDir == "":
		params.BaseDir = dir
	case !filepath.IsAbs(params.BaseDir):
		params.BaseDir = filepath.Join(dir, params.BaseDir)
	}

	eng, err := engine.New(engine.Config{
		BaseDir:     params.BaseDir,
		BemjsonSrc:  params.BemjsonSrc,
		Levels:      params.Levels,
		Parallelism: cfg.Parallelism,
	})
	if err != nil {
		return nil, err
	}
	return eng.Resolve(ctx)
}
