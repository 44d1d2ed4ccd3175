package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mojo-zlib/devtools/pkg"
	"github.com/mojo-zlib/devtools/pkg/publish"
)

var publishCmd = &cobra.Command{
	Use:   "publish channel",
	Short: "Publishes the built conda packages to the given channel",
	Long: `Uploads every .conda file in the build output directory to the given
prefix.dev channel. Failed uploads are logged and skipped; each local file
is removed after its upload attempt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := pkg.NewLogger()
		mustLoadConfig(&logger)

		pub, err := publish.NewPublisher(&logger)
		if err != nil {
			return err
		}

		_, err = pub.Publish(cmd.Context(), args[0])
		return err
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
}
