package cmd

import (
	"github.com/spf13/cobra"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "reversi",
		Short: "Reversi game server for two or three players",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringP("config", "c", "config.yml", "path to the config file")

	root.AddCommand(Serve())
	root.AddCommand(Play())

	return root
}
