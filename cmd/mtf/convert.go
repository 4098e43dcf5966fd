package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mtfield/config"
	"github.com/katalvlaran/mtfield/internal/app"
	"github.com/katalvlaran/mtfield/quantize"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input.csv] [output]",
	Short: "Convert a CSV table into a batch of MTF images",
	Long: `Reads a wide table (one series per row), drops the identifier column and
writes an [R, M, M] tensor. The output is a .npy path, a file:// or
s3://bucket/key location, or a SQLite database with --format sqlite.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			cfg.Input.Path = args[0]
		}
		if len(args) > 1 {
			cfg.Output.Path = args[1]
		}
		applyConvertFlags(cmd, &cfg)

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		m, stop, err := serveMetrics(cfg.Metrics.Addr, log)
		if err != nil {
			return err
		}
		defer stop()

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()

		rep, err := app.Convert(ctx, cfg, log, m)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rep)

		return nil
	},
}

// applyConvertFlags overrides cfg with every flag set on the command line.
func applyConvertFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("bins") {
		cfg.Transform.Bins, _ = f.GetInt("bins")
	}
	if f.Changed("strategy") {
		s, _ := f.GetString("strategy")
		cfg.Transform.Strategy = quantize.Strategy(s)
	}
	if f.Changed("image-size") {
		cfg.Transform.ImageSize, _ = f.GetInt("image-size")
	}
	if f.Changed("workers") {
		cfg.Batch.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("progress-every") {
		cfg.Batch.ProgressEvery, _ = f.GetInt("progress-every")
	}
	if f.Changed("stream") {
		cfg.Batch.Stream, _ = f.GetBool("stream")
	}
	if f.Changed("range-check") {
		cfg.Batch.RangeCheck, _ = f.GetBool("range-check")
	}
	if f.Changed("id-column") {
		cfg.Input.IDColumn, _ = f.GetString("id-column")
	}
	if f.Changed("drop") {
		cfg.Input.Drop, _ = f.GetStringSlice("drop")
	}
	if f.Changed("format") {
		cfg.Output.Format, _ = f.GetString("format")
	}
	if f.Changed("snappy") {
		cfg.Output.Snappy, _ = f.GetBool("snappy")
	}
	if f.Changed("ids") {
		cfg.Output.IDs, _ = f.GetString("ids")
	}
	if f.Changed("name") {
		cfg.Output.Name, _ = f.GetString("name")
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().Int("bins", 0, "Number of quantization bins (>= 2)")
	convertCmd.Flags().String("strategy", "", "Binning strategy: quantile or uniform")
	convertCmd.Flags().Int("image-size", 0, "Output image side M (0 = series length)")
	convertCmd.Flags().IntP("workers", "w", 0, "Rows transformed concurrently")
	convertCmd.Flags().Int("progress-every", 0, "Log progress every N rows (0 disables)")
	convertCmd.Flags().Bool("stream", false, "Write images as they are produced instead of holding the tensor")
	convertCmd.Flags().Bool("range-check", false, "Verify every image value lies in [0, 1]")
	convertCmd.Flags().String("id-column", "", "Identifier column to drop and keep aside")
	convertCmd.Flags().StringSlice("drop", nil, "Further non-series columns to drop")
	convertCmd.Flags().String("format", "", "Output format: npy or sqlite")
	convertCmd.Flags().Bool("snappy", false, "Frame the .npy output with snappy")
	convertCmd.Flags().String("ids", "", "Write the identifier column to this location")
	convertCmd.Flags().String("name", "", "Batch name inside a SQLite output")
}
