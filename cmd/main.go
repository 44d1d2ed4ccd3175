package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mojo-zlib/devtools/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "devtool",
	Short: "Packaging tools for the zlib Mojo library",
	Long: `This command bundles the scripts used to package this project.
This includes tools to generate the conda recipe, build the conda package and
upload the built packages to a prefix.dev channel.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// mustLoadConfig aborts the process if pixi.toml can't be read. None of
// the subcommands can do anything useful without it.
func mustLoadConfig(logger *zerolog.Logger) config.ProjectConfig {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		logger.Fatal().Err(err).Msgf("Failed to load %s", config.DefaultPath)
	}
	return cfg
}
