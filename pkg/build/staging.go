package build

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/mojo-zlib/devtools/pkg/config"
)

// Staging manages the scratch directory a compiled .mojopkg is placed in
// before packaging.
//
// The directory path is fixed per user, so concurrent invocations race on
// it.
type Staging struct {
	Dir      string
	Compiler string
	// SourceDir is the directory the package sources live under.
	SourceDir string
	Logger    *zerolog.Logger
}

func NewStaging(logger *zerolog.Logger) (*Staging, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, eris.Wrap(err, "Failed to determine the home directory")
	}

	return &Staging{
		Dir:       filepath.Join(home, "tmp"),
		Compiler:  "mojo",
		SourceDir: "src",
		Logger:    logger,
	}, nil
}

// Reset removes the staging directory along with anything a previous run
// left behind and recreates it empty.
func (s *Staging) Reset() error {
	_, err := os.Stat(s.Dir)
	if err == nil {
		s.Logger.Info().Str("step", "staging").Msg("Removing the staging directory")
		if err := os.RemoveAll(s.Dir); err != nil {
			return eris.Wrapf(err, "Failed to remove %s", s.Dir)
		}
	} else if !eris.Is(err, os.ErrNotExist) {
		return eris.Wrapf(err, "Failed to check %s", s.Dir)
	}

	if err := os.MkdirAll(s.Dir, 0770); err != nil {
		return eris.Wrapf(err, "Failed to create %s", s.Dir)
	}

	return nil
}

// Prepare resets the staging directory and compiles the configured package
// into it as its single artifact.
func (s *Staging) Prepare(ctx context.Context, cfg config.ProjectConfig) error {
	if err := s.Reset(); err != nil {
		return err
	}

	name := cfg.Package.Name
	output := filepath.Join(s.Dir, name+".mojopkg")
	s.Logger.Info().Str("step", "staging").Msgf("Compiling %s", output)

	cmd := exec.CommandContext(ctx, s.Compiler, "package", filepath.Join(s.SourceDir, name), "-o", output)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return eris.Wrapf(err, "%s package failed for %s", s.Compiler, name)
	}

	return nil
}
