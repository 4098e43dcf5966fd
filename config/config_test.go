package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mtfield"
	"github.com/katalvlaran/mtfield/config"
	"github.com/katalvlaran/mtfield/quantize"
)

const sample = `
transform:
  bins: 10
  strategy: uniform
  image_size: 24
batch:
  workers: 4
  progress_every: 0
  stream: true
input:
  path: data/act_bin_sl_D.csv
  id_column: SEQN
output:
  path: s3://nhanes/mtf_images_D.npy
  snappy: true
  s3:
    region: eu-west-1
    use_path_style: true
log:
  level: debug
  format: json
`

func TestParse_OverDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Transform.Bins)
	assert.Equal(t, quantize.Uniform, cfg.Transform.Strategy)
	assert.Equal(t, 24, cfg.Transform.ImageSize)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Zero(t, cfg.Batch.ProgressEvery)
	assert.Equal(t, 64, cfg.Batch.Window, "absent keys keep defaults")
	assert.True(t, cfg.Batch.Stream)
	assert.Equal(t, "npy", cfg.Output.Format)
	assert.Equal(t, "eu-west-1", cfg.Output.S3.Region)
	assert.True(t, cfg.Output.S3.UsePathStyle)
	assert.NoError(t, cfg.Validate())
}

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := config.Parse([]byte("transform:\n  nbins: 8\n"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mtf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/act_bin_sl_D.csv", cfg.Input.Path)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		config.EnvBins:     "6",
		config.EnvStrategy: " Uniform ",
		config.EnvWorkers:  "3",
		config.EnvS3Bucket: "nhanes",
		config.EnvLogLevel: "warn",
	}
	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) (string, bool) { v, ok := env[k]; return v, ok }))

	assert.Equal(t, 6, cfg.Transform.Bins)
	assert.Equal(t, quantize.Uniform, cfg.Transform.Strategy)
	assert.Equal(t, 3, cfg.Batch.Workers)
	assert.Equal(t, "nhanes", cfg.Output.S3.Bucket)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Zero(t, cfg.Transform.ImageSize)

	err := cfg.ApplyEnv(func(k string) (string, bool) { return "eight", k == config.EnvBins })
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestValidate_Collects(t *testing.T) {
	cfg := config.Default()
	cfg.Transform.Bins = 1
	cfg.Batch.Window = 0
	cfg.Output.Format = "hdf5"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, quantize.ErrBinCount)
	assert.ErrorIs(t, err, mtfield.ErrConfig)
	for _, key := range []string{"transform.bins", "batch.window", "output.format", "log.level"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestDriverOptions(t *testing.T) {
	assert.Len(t, config.Default().DriverOptions(), 4)
}
