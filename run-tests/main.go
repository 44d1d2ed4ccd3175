// Standalone test runner. Runs every Mojo test file below the tests
// directory through the external test command, one at a time, and reports
// an aggregate summary. Exits with status 1 if any file failed.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mojo-zlib/devtools/pkg"
	"github.com/mojo-zlib/devtools/pkg/testrun"
)

const testsDir = "tests"

func main() {
	logger := pkg.NewLogger()
	ctx := context.Background()

	runner := testrun.NewRunner(&logger)
	files, err := runner.Discover(testsDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to discover test files")
	}

	if len(files) == 0 {
		fmt.Printf("No %s test files found in %s directory\n", runner.Ext, testsDir)
		return
	}

	fmt.Printf("Found %d test files\n", len(files))
	fmt.Println(strings.Repeat("=", 80))

	_, summary := runner.RunAll(ctx, files)

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("Test Summary:")
	fmt.Printf("  Total files: %d\n", summary.Total)
	fmt.Printf("  Passed: %d\n", summary.Passed)
	fmt.Printf("  Failed: %d\n", summary.Failed)
	fmt.Printf("  Total runtime: %.2fs\n", summary.Elapsed.Seconds())
	fmt.Printf("  Average per file: %.2fs\n", summary.Average().Seconds())

	if summary.Failed > 0 {
		os.Exit(1)
	}
}
