package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mtfield"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mtf",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mtf version %s\n", mtfield.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
