// Package config loads the mtf command configuration from YAML, the
// environment and (in the CLI) flags, in increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/mtfield"
	"github.com/katalvlaran/mtfield/batch"
	"github.com/katalvlaran/mtfield/internal/logging"
	"github.com/katalvlaran/mtfield/mtf"
	"github.com/katalvlaran/mtfield/quantize"
	"github.com/katalvlaran/mtfield/storage"
)

// Output formats.
const (
	FormatNPY    = "npy"
	FormatSQLite = "sqlite"
)

// Config is the full configuration file.
type Config struct {
	Transform mtf.Config    `yaml:"transform"`
	Batch     BatchConfig   `yaml:"batch"`
	Input     InputConfig   `yaml:"input"`
	Output    OutputConfig  `yaml:"output"`
	Log       LogConfig     `yaml:"log"`
	Metrics   MetricsConfig `yaml:"metrics"`
}

// BatchConfig tunes the batch driver.
type BatchConfig struct {
	Workers       int  `yaml:"workers"`        // 0/1 sequential
	ProgressEvery int  `yaml:"progress_every"` // 0 disables progress
	Stream        bool `yaml:"stream"`         // bounded-memory mode
	Window        int  `yaml:"window"`         // images per stream window
	RangeCheck    bool `yaml:"range_check"`    // validate images in [0,1]
}

// InputConfig describes the source table.
type InputConfig struct {
	Path     string   `yaml:"path"`
	IDColumn string   `yaml:"id_column"` // dropped and written to ids output
	Drop     []string `yaml:"drop"`      // further non-series columns
	Missing  []string `yaml:"missing"`   // nil = table.DefaultMissing
	Column   string   `yaml:"column"`    // long format: single series column
}

// OutputConfig describes the destination.
type OutputConfig struct {
	Path   string           `yaml:"path"`   // file path, file:// or s3://bucket/key
	Format string           `yaml:"format"` // npy | sqlite
	Snappy bool             `yaml:"snappy"` // npy only
	Name   string           `yaml:"name"`   // sqlite batch name; default input base name
	IDs    string           `yaml:"ids"`    // identifier CSV destination
	S3     storage.S3Config `yaml:"s3"`
}

// LogConfig selects level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig exposes Prometheus metrics while a command runs.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // "" disables the /metrics listener
}

// ErrInvalid wraps every validation failure. Class: mtfield.ErrConfig.
var ErrInvalid = fmt.Errorf("config: invalid: %w", mtfield.ErrConfig)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Transform: mtf.DefaultConfig(),
		Batch: BatchConfig{
			Workers:       1,
			ProgressEvery: batch.DefaultProgressEvery,
			Window:        batch.DefaultStreamWindow,
		},
		Input:  InputConfig{IDColumn: "SEQN"},
		Output: OutputConfig{Format: FormatNPY},
		Log:    LogConfig{Level: "info", Format: logging.FormatAuto},
	}
}

// Load reads path over Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML over Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	return cfg, nil
}

// Environment variables read by ApplyEnv.
const (
	EnvBins       = "MTF_BINS"
	EnvStrategy   = "MTF_STRATEGY"
	EnvImageSize  = "MTF_IMAGE_SIZE"
	EnvWorkers    = "MTF_WORKERS"
	EnvS3Bucket   = "MTF_S3_BUCKET"
	EnvS3Region   = "MTF_S3_REGION"
	EnvS3Endpoint = "MTF_S3_ENDPOINT"
	EnvLogLevel   = "MTF_LOG_LEVEL"
)

// ApplyEnv overrides fields from MTF_* variables found by lookup
// (os.LookupEnv in the CLI).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvBins, &c.Transform.Bins},
		{EnvImageSize, &c.Transform.ImageSize},
		{EnvWorkers, &c.Batch.Workers},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", e.key, v, ErrInvalid)
		}
		*e.dst = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{EnvS3Bucket, &c.Output.S3.Bucket},
		{EnvS3Region, &c.Output.S3.Region},
		{EnvS3Endpoint, &c.Output.S3.Endpoint},
		{EnvLogLevel, &c.Log.Level},
	}
	for _, e := range strs {
		if v, ok := lookup(e.key); ok {
			*e.dst = v
		}
	}
	if v, ok := lookup(EnvStrategy); ok {
		c.Transform.Strategy = quantize.Strategy(strings.ToLower(strings.TrimSpace(v)))
	}

	return nil
}

// Validate checks every field that can be checked without data. Image
// size against series length is checked by the driver.
func (c Config) Validate() error {
	var errs []error
	if c.Transform.Bins < quantize.MinBins {
		errs = append(errs, fmt.Errorf("transform.bins=%d: %w", c.Transform.Bins, quantize.ErrBinCount))
	}
	if c.Transform.Strategy != "" && !c.Transform.Strategy.Valid() {
		errs = append(errs, fmt.Errorf("transform.strategy=%q: %w", c.Transform.Strategy, quantize.ErrUnknownStrategy))
	}
	if c.Transform.ImageSize < 0 {
		errs = append(errs, fmt.Errorf("transform.image_size=%d: %w", c.Transform.ImageSize, ErrInvalid))
	}
	if c.Batch.Workers < 0 {
		errs = append(errs, fmt.Errorf("batch.workers=%d: %w", c.Batch.Workers, ErrInvalid))
	}
	if c.Batch.ProgressEvery < 0 {
		errs = append(errs, fmt.Errorf("batch.progress_every=%d: %w", c.Batch.ProgressEvery, ErrInvalid))
	}
	if c.Batch.Window < 1 {
		errs = append(errs, fmt.Errorf("batch.window=%d: %w", c.Batch.Window, ErrInvalid))
	}
	switch c.Output.Format {
	case FormatNPY:
	case FormatSQLite:
		if c.Output.Snappy {
			errs = append(errs, fmt.Errorf("output.snappy with format sqlite: %w", ErrInvalid))
		}
	default:
		errs = append(errs, fmt.Errorf("output.format=%q: %w", c.Output.Format, ErrInvalid))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %v: %w", err, ErrInvalid))
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON, logging.FormatAuto, "":
	default:
		errs = append(errs, fmt.Errorf("log.format=%q: %w", c.Log.Format, ErrInvalid))
	}

	return errors.Join(errs...)
}

// DriverOptions maps the batch section onto driver options.
func (c Config) DriverOptions() []batch.Option {
	return []batch.Option{
		batch.WithWorkers(c.Batch.Workers),
		batch.WithProgressEvery(c.Batch.ProgressEvery),
		batch.WithStreamWindow(c.Batch.Window),
		batch.WithRangeCheck(c.Batch.RangeCheck),
	}
}
