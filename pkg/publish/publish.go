// Package publish uploads built conda packages to a distribution channel.
package publish

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/mojo-zlib/devtools/pkg"
	"github.com/mojo-zlib/devtools/pkg/config"
)

// UploadResult records the outcome of a single upload attempt.
type UploadResult struct {
	File string
	Err  error
}

type Publisher struct {
	Dir    string
	Tool   string
	Host   string
	Logger *zerolog.Logger
}

func NewPublisher(logger *zerolog.Logger) (*Publisher, error) {
	dir, err := config.BuildOutputDir()
	if err != nil {
		return nil, err
	}

	return &Publisher{
		Dir:    dir,
		Tool:   "pixi",
		Host:   "prefix.dev",
		Logger: logger,
	}, nil
}

// Publish uploads every .conda file in the build output directory to the
// given channel. Upload failures don't stop the loop; they only end up in
// the returned results. Every local file is deleted after its upload
// attempt, even when the upload failed. This mirrors the original
// publishing flow: a failed upload loses the local copy.
func (p *Publisher) Publish(ctx context.Context, channel string) ([]UploadResult, error) {
	pkg.PrintTask(fmt.Sprintf("Publishing packages to: %s, from %s.", channel, p.Dir))

	files, err := filepath.Glob(filepath.Join(p.Dir, "*.conda"))
	if err != nil {
		return nil, eris.Wrapf(err, "Failed to list packages in %s", p.Dir)
	}

	url := fmt.Sprintf("https://%s/api/v1/upload/%s", p.Host, channel)
	results := make([]UploadResult, 0, len(files))
	for _, file := range files {
		pkg.PrintSubtask(fmt.Sprintf("Uploading %s to %s...", file, channel))

		cmd := exec.CommandContext(ctx, p.Tool, "upload", url, file)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		uploadErr := cmd.Run()
		if uploadErr != nil {
			uploadErr = eris.Wrapf(uploadErr, "Failed to upload %s", file)
			p.Logger.Warn().Str("step", "publish").Err(uploadErr).Msgf("Upload of %s failed", file)
		}

		results = append(results, UploadResult{File: file, Err: uploadErr})

		if err := os.Remove(file); err != nil {
			return results, eris.Wrapf(err, "Failed to remove %s", file)
		}
	}

	return results, nil
}
