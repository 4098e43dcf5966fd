package app

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/mtfield/config"
	"github.com/katalvlaran/mtfield/matrix"
	"github.com/katalvlaran/mtfield/mtf"
	"github.com/katalvlaran/mtfield/npy"
	"github.com/katalvlaran/mtfield/table"
)

// Image formats for a single field.
const (
	ImageNPY = "npy"
	ImageCSV = "csv"
)

// Field transforms one column of a long CSV and returns the image with
// the intermediate stages.
func Field(path, column string, cfg mtf.Config, in config.InputConfig) (*matrix.Dense, *mtf.Decomposition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var opts []table.CSVOption
	if in.Missing != nil {
		opts = append(opts, table.WithMissingTokens(in.Missing...))
	}
	series, err := table.ReadColumn(f, column, opts...)
	if err != nil {
		return nil, nil, err
	}
	tr, err := mtf.New(cfg, len(series))
	if err != nil {
		return nil, nil, err
	}
	d, err := tr.Decompose(series)
	if err != nil {
		return nil, nil, err
	}
	img, err := tr.Transform(series)
	if err != nil {
		return nil, nil, err
	}

	return img, d, nil
}

// WriteImage encodes img as a 2-D .npy or as CSV rows.
func WriteImage(w io.Writer, img *matrix.Dense, format string) error {
	r, c := img.Shape()
	switch format {
	case ImageNPY:
		return npy.Write(w, []int{r, c}, img.RawData())
	case ImageCSV:
		rows := make([][]float64, r)
		data := img.RawData()
		for i := range rows {
			rows[i] = data[i*c : (i+1)*c]
		}
		return table.WriteCSV(w, nil, rows)
	default:
		return fmt.Errorf("app: image format %q: %w", format, config.ErrInvalid)
	}
}
