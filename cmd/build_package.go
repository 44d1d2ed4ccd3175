package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mojo-zlib/devtools/pkg"
	"github.com/mojo-zlib/devtools/pkg/build"
)

var buildPackageCmd = &cobra.Command{
	Use:   "build-conda-package",
	Short: "Builds the conda package for the project",
	Long: `Builds the conda package from recipe.yaml, generating the recipe first if
it doesn't exist. The package is written to CONDA_BLD_PATH if set, otherwise
to the current directory. The recipe file is removed after a successful
build.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := pkg.NewLogger()
		cfg := mustLoadConfig(&logger)

		orch, err := build.NewOrchestrator(&logger)
		if err != nil {
			return err
		}

		return orch.Run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(buildPackageCmd)
}
