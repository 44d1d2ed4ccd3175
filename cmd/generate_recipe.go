package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mojo-zlib/devtools/pkg"
	"github.com/mojo-zlib/devtools/pkg/recipe"
)

var generateRecipeCmd = &cobra.Command{
	Use:   "generate-recipe",
	Short: "Generates the conda recipe from the project configuration",
	Long: `Generates recipe.yaml for the project based on the project configuration
found in pixi.toml. An existing recipe.yaml is overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := pkg.NewLogger()
		cfg := mustLoadConfig(&logger)

		opts := recipe.DefaultOptions()
		rec, err := recipe.Generate(cfg, opts)
		if err != nil {
			return err
		}

		err = rec.Write(opts.Path)
		if err != nil {
			return err
		}

		logger.Info().Str("step", "recipe").Msgf("Wrote %s", opts.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateRecipeCmd)
}
