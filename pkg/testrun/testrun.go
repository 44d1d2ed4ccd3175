// Package testrun runs the project's Mojo test files through the external
// test command one file at a time.
package testrun

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// Result is the outcome of a single test file run.
type Result struct {
	File     string
	Passed   bool
	Duration time.Duration
	Stdout   string
	Stderr   string
}

// Summary aggregates the results of a whole run.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Elapsed time.Duration
}

// Average returns the mean wall-clock duration per file. Only defined for
// runs that discovered at least one file.
func (s Summary) Average() time.Duration {
	return s.Elapsed / time.Duration(s.Total)
}

// Runner invokes the external test command for each discovered file. Files
// run strictly sequentially; a failure never aborts the remaining files.
type Runner struct {
	Tool string
	Args []string
	Ext  string
	// Progress receives the progress bar output.
	Progress io.Writer
	Logger   *zerolog.Logger
}

func NewRunner(logger *zerolog.Logger) *Runner {
	return &Runner{
		Tool:     "pixi",
		Args:     []string{"run", "test"},
		Ext:      ".mojo",
		Progress: os.Stderr,
		Logger:   logger,
	}
}

// Discover returns all test files below root in lexicographic order. The
// result is deterministic for an unchanged tree. A missing root yields no
// files rather than an error.
func (r *Runner) Discover(root string) ([]string, error) {
	_, err := os.Stat(root)
	if err != nil {
		if eris.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "Failed to check %s", root)
	}

	files := []string{}
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.HasSuffix(path, r.Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "Failed to search %s for test files", root)
	}

	sort.Strings(files)
	return files, nil
}

// RunFile runs a single test file and captures its output and duration. A
// failure to even start the tool counts as a failed test with the error
// text in Stderr.
func (r *Runner) RunFile(ctx context.Context, file string) Result {
	args := append(append([]string{}, r.Args...), file)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Tool, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := Result{
		File:     file,
		Duration: time.Since(start),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err == nil {
		result.Passed = true
	} else if !isExitError(err) {
		// the tool never ran, so there is no captured output to show
		result.Stderr = err.Error()
	}

	return result
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return eris.As(err, &exitErr)
}

// RunAll runs every file in the given order and reports each outcome as it
// happens. All files are always run.
func (r *Runner) RunAll(ctx context.Context, files []string) ([]Result, Summary) {
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Running tests"),
		progressbar.OptionSetWriter(r.Progress),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(r.Progress)
		}),
	)

	summary := Summary{Total: len(files)}
	results := make([]Result, 0, len(files))
	start := time.Now()

	for idx, file := range files {
		r.Logger.Info().Str("step", "test").Msgf("[%d/%d] Running: %s", idx+1, len(files), file)

		result := r.RunFile(ctx, file)
		results = append(results, result)

		if result.Passed {
			summary.Passed++
			r.Logger.Info().Str("step", "test").Msgf("PASSED in %.2fs", result.Duration.Seconds())
		} else {
			summary.Failed++
			r.Logger.Error().Str("step", "test").Msgf("FAILED in %.2fs", result.Duration.Seconds())
			if result.Stderr != "" {
				r.Logger.Error().Str("step", "test").Msgf("Error output:\n%s", result.Stderr)
			}
		}

		_ = bar.Add(1)
	}

	summary.Elapsed = time.Since(start)
	return results, summary
}
