package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mojo-zlib/devtools/pkg"
	"github.com/mojo-zlib/devtools/pkg/build"
)

var prepareStagingCmd = &cobra.Command{
	Use:   "prepare-staging",
	Short: "Resets the staging directory and compiles the package into it",
	Long: `Removes the staging directory under the home directory if it exists,
recreates it empty and compiles the project's .mojopkg artifact into it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := pkg.NewLogger()
		cfg := mustLoadConfig(&logger)

		staging, err := build.NewStaging(&logger)
		if err != nil {
			return err
		}

		return staging.Prepare(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(prepareStagingCmd)
}
