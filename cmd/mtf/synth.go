package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mtfield/synth"
	"github.com/katalvlaran/mtfield/table"
)

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Write a synthetic wide table for trying the pipeline",
	Long: `Generates rows of a deterministic synthetic signal with a SEQN
identifier column, in the layout convert reads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		kindName, _ := f.GetString("kind")
		rows, _ := f.GetInt("rows")
		n, _ := f.GetInt("len")
		seed, _ := f.GetInt64("seed")
		noise, _ := f.GetFloat64("noise")
		out, _ := f.GetString("out")

		kind, err := synth.ParseKind(kindName)
		if err != nil {
			return err
		}
		var opts []synth.Option
		if noise > 0 {
			opts = append(opts, synth.WithNoise(noise))
		}
		tbl, err := synth.BuildTable(kind, rows, n, seed, opts...)
		if err != nil {
			return err
		}
		for k := range tbl {
			tbl[k] = append([]float64{float64(k + 1)}, tbl[k]...)
		}

		var w io.Writer = cmd.OutOrStdout()
		if out != "" {
			file, err := os.Create(out)
			if err != nil {
				return err
			}
			defer file.Close()
			w = file
		}

		return table.WriteCSV(w, append([]string{"SEQN"}, table.Header("X", n)...), tbl)
	},
}

func init() {
	rootCmd.AddCommand(synthCmd)

	kinds := make([]string, 0, len(synth.Kinds()))
	for _, k := range synth.Kinds() {
		kinds = append(kinds, string(k))
	}
	synthCmd.Flags().String("kind", string(synth.KindActivity), "Signal kind: "+strings.Join(kinds, ", "))
	synthCmd.Flags().Int("rows", 100, "Number of rows")
	synthCmd.Flags().Int("len", 240, "Series length per row")
	synthCmd.Flags().Int64("seed", 1, "Seed of the first row; row k uses seed+k")
	synthCmd.Flags().Float64("noise", 0, "Gaussian noise standard deviation")
	synthCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
}
