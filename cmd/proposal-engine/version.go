package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of proposal-engine",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "proposal-engine %s\n", mutedStyle.Render(version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
