package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mtfield/internal/app"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>",
	Short: "Print the shape and value range of a stored batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")

		b, err := app.Inspect(cmd.Context(), args[0], name, cfg.Output.S3)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), app.Summarize(b))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().String("name", "", "Read this batch from a SQLite database at <path>")
}
