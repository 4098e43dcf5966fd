package app_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mtfield/config"
	"github.com/katalvlaran/mtfield/internal/app"
	"github.com/katalvlaran/mtfield/mtf"
	"github.com/katalvlaran/mtfield/npy"
	"github.com/katalvlaran/mtfield/quantize"
	"github.com/katalvlaran/mtfield/table"
)

func TestField_LongColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, os.WriteFile(path, []byte("t,value\n0,1\n1,2\n2,3\n3,4\n4,2\n5,1\n"), 0o644))
	cfg := mtf.Config{Bins: 2, Strategy: quantize.Uniform, ImageSize: 3}

	img, d, err := app.Field(path, "value", cfg, config.InputConfig{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1, 0, 0}, d.Bins)
	assert.InDeltaSlice(t, []float64{
		2.0 / 3, 1.0 / 3, 2.0 / 3,
		0.5, 0.5, 0.5,
		2.0 / 3, 1.0 / 3, 2.0 / 3,
	}, img.RawData(), 1e-12)

	_, _, err = app.Field(path, "missing", cfg, config.InputConfig{})
	assert.ErrorIs(t, err, table.ErrColumn)
}

func TestWriteImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, os.WriteFile(path, []byte("v\n1\n3\n2\n4\n"), 0o644))
	img, _, err := app.Field(path, "v", mtf.Config{Bins: 2, Strategy: quantize.Quantile}, config.InputConfig{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, app.WriteImage(&buf, img, app.ImageNPY))
	shape, data, err := npy.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4}, shape)
	assert.Equal(t, img.RawData(), data)

	buf.Reset()
	require.NoError(t, app.WriteImage(&buf, img, app.ImageCSV))
	assert.Equal(t, 4, bytes.Count(buf.Bytes(), []byte("\n")))

	assert.ErrorIs(t, app.WriteImage(&buf, img, "png"), config.ErrInvalid)
}
