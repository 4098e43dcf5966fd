package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mtfield/internal/app"
)

var fieldCmd = &cobra.Command{
	Use:   "field <series.csv>",
	Short: "Transform one column of a long CSV into a single MTF image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		applyConvertFlags(cmd, &cfg)
		column, _ := cmd.Flags().GetString("column")
		if column == "" {
			column = cfg.Input.Column
		}
		out, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("image-format")
		verbose, _ := cmd.Flags().GetBool("stages")

		img, d, err := app.Field(args[0], column, cfg.Transform, cfg.Input)
		if err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "edges: %v\n", d.Edges)
			fmt.Fprintf(cmd.ErrOrStderr(), "transition:\n%s", d.Transition)
		}

		var w io.Writer = cmd.OutOrStdout()
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}

		return app.WriteImage(w, img, format)
	},
}

func init() {
	rootCmd.AddCommand(fieldCmd)

	fieldCmd.Flags().Int("bins", 0, "Number of quantization bins (>= 2)")
	fieldCmd.Flags().String("strategy", "", "Binning strategy: quantile or uniform")
	fieldCmd.Flags().Int("image-size", 0, "Output image side M (0 = series length)")
	fieldCmd.Flags().String("column", "value", "Series column")
	fieldCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	fieldCmd.Flags().String("image-format", app.ImageCSV, "Image encoding: csv or npy")
	fieldCmd.Flags().Bool("stages", false, "Print bin edges and the transition matrix to stderr")
}
