// Package build drives the external conda package build and the staging
// directory used for intermediate artifacts.
package build

import (
	"context"
	"os"
	"os/exec"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/mojo-zlib/devtools/pkg/config"
	"github.com/mojo-zlib/devtools/pkg/recipe"
)

// Orchestrator runs the external build tool against the recipe file.
//
// The recipe path is fixed, so concurrent invocations race on it. Run one
// build at a time.
type Orchestrator struct {
	OutputDir string
	Tool      string
	Options   recipe.Options
	Logger    *zerolog.Logger
}

func NewOrchestrator(logger *zerolog.Logger) (*Orchestrator, error) {
	outDir, err := config.BuildOutputDir()
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		OutputDir: outDir,
		Tool:      "pixi",
		Options:   recipe.DefaultOptions(),
		Logger:    logger,
	}, nil
}

// Run builds the conda package. A missing recipe file is generated first;
// an existing one is used as-is. After a successful build the recipe file
// is removed either way, so a hand-written recipe.yaml does not survive a
// build. A failed build leaves everything in place.
func (o *Orchestrator) Run(ctx context.Context, cfg config.ProjectConfig) error {
	_, err := os.Stat(o.Options.Path)
	if err != nil {
		if !eris.Is(err, os.ErrNotExist) {
			return eris.Wrapf(err, "Failed to check %s", o.Options.Path)
		}

		o.Logger.Info().Str("step", "build").Msgf("Generating %s", o.Options.Path)
		rec, err := recipe.Generate(cfg, o.Options)
		if err != nil {
			return err
		}

		if err := rec.Write(o.Options.Path); err != nil {
			return err
		}
	}

	o.Logger.Info().Str("step", "build").Msgf("Building conda package into %s", o.OutputDir)
	cmd := exec.CommandContext(ctx, o.Tool, "build", "-o", o.OutputDir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return eris.Wrapf(err, "%s build failed", o.Tool)
	}

	if err := os.Remove(o.Options.Path); err != nil {
		return eris.Wrapf(err, "Failed to remove %s", o.Options.Path)
	}

	return nil
}
