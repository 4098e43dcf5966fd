// Package app wires configuration, sources, the batch driver and sinks
// into the operations the mtf command exposes.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/mtfield/batch"
	"github.com/katalvlaran/mtfield/config"
	"github.com/katalvlaran/mtfield/sink"
	"github.com/katalvlaran/mtfield/storage"
	"github.com/katalvlaran/mtfield/table"
)

// ErrNoInput is returned when no input table is configured.
var ErrNoInput = errors.New("app: no input path")

// ErrNoOutput is returned when no output destination is configured.
var ErrNoOutput = errors.New("app: no output path")

// OpenBackend opens the backend that holds loc and returns the key of loc
// inside it. File locations are rooted at their parent directory.
func OpenBackend(ctx context.Context, loc storage.Location, s3cfg storage.S3Config) (storage.Backend, string, error) {
	if loc.Scheme == "s3" {
		s3cfg.Bucket = loc.Bucket
		b, err := storage.NewS3Backend(ctx, s3cfg)
		if err != nil {
			return nil, "", err
		}
		return b, loc.Key, nil
	}
	b, err := storage.NewFileBackend(filepath.Dir(loc.Key))
	if err != nil {
		return nil, "", err
	}

	return b, filepath.Base(loc.Key), nil
}

// OpenSource opens the configured CSV table.
func OpenSource(in config.InputConfig) (*table.CSVSource, error) {
	if in.Path == "" {
		return nil, ErrNoInput
	}
	opts := []table.CSVOption{table.WithDropColumns(in.Drop...)}
	if in.IDColumn != "" {
		opts = append(opts, table.WithIDColumn(in.IDColumn))
	}
	if in.Missing != nil {
		opts = append(opts, table.WithMissingTokens(in.Missing...))
	}

	return table.OpenCSVFile(in.Path, opts...)
}

// Convert runs the configured table through the batch driver into the
// configured sink and, when requested, writes the identifier column.
func Convert(ctx context.Context, cfg config.Config, log *slog.Logger, m *batch.Metrics) (batch.Report, error) {
	if err := cfg.Validate(); err != nil {
		return batch.Report{}, err
	}
	if cfg.Output.Path == "" {
		return batch.Report{}, ErrNoOutput
	}
	src, err := OpenSource(cfg.Input)
	if err != nil {
		return batch.Report{}, err
	}
	rows, n := src.Dims()
	log.Info("table loaded", "path", cfg.Input.Path, "rows", rows, "series_len", n)

	opts := append(cfg.DriverOptions(), batch.WithLogger(log), batch.WithMetrics(m))
	drv := batch.NewDriver(cfg.Transform, opts...)

	var rep batch.Report
	switch cfg.Output.Format {
	case config.FormatSQLite:
		rep, err = convertSQLite(ctx, cfg, drv, src)
	default:
		rep, err = convertNPY(ctx, cfg, drv, src)
	}
	if err != nil {
		return rep, err
	}

	if cfg.Output.IDs != "" {
		if err = writeIDs(ctx, cfg, src); err != nil {
			return rep, err
		}
	}

	return rep, nil
}

func convertNPY(ctx context.Context, cfg config.Config, drv *batch.Driver, src batch.TableSource) (batch.Report, error) {
	loc, err := storage.ParseLocation(cfg.Output.Path)
	if err != nil {
		return batch.Report{}, err
	}
	backend, key, err := OpenBackend(ctx, loc, cfg.Output.S3)
	if err != nil {
		return batch.Report{}, err
	}
	defer backend.Close()

	s := sink.NewNPYSink(backend, sink.WithSnappy(cfg.Output.Snappy))
	if cfg.Batch.Stream {
		return drv.RunStream(ctx, src, s, key)
	}

	return drv.RunTo(ctx, src, s, key)
}

func convertSQLite(ctx context.Context, cfg config.Config, drv *batch.Driver, src batch.TableSource) (batch.Report, error) {
	s, err := sink.OpenSQLite(cfg.Output.Path)
	if err != nil {
		return batch.Report{}, err
	}
	defer s.Close()

	name := BatchName(cfg)
	if cfg.Batch.Stream {
		return drv.RunStream(ctx, src, s, name)
	}

	return drv.RunTo(ctx, src, s, name)
}

// BatchName is the SQLite batch name: output.name, else the input file
// name without extension.
func BatchName(cfg config.Config) string {
	if cfg.Output.Name != "" {
		return cfg.Output.Name
	}
	base := filepath.Base(cfg.Input.Path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeIDs(ctx context.Context, cfg config.Config, src *table.CSVSource) error {
	if cfg.Input.IDColumn == "" {
		return fmt.Errorf("app: output.ids set without input.id_column: %w", config.ErrInvalid)
	}
	loc, err := storage.ParseLocation(cfg.Output.IDs)
	if err != nil {
		return err
	}
	backend, key, err := OpenBackend(ctx, loc, cfg.Output.S3)
	if err != nil {
		return err
	}
	defer backend.Close()

	var buf bytes.Buffer
	if err = table.WriteIDs(&buf, cfg.Input.IDColumn, src.IDs()); err != nil {
		return err
	}

	return backend.Write(ctx, key, buf.Bytes())
}

// Inspect loads a stored batch: a .npy (optionally .sz) location, or a
// named batch in a SQLite database when name is non-empty.
func Inspect(ctx context.Context, path, name string, s3cfg storage.S3Config) (*batch.ImageBatch, error) {
	if name != "" {
		s, err := sink.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.ReadBatch(ctx, name)
	}
	loc, err := storage.ParseLocation(path)
	if err != nil {
		return nil, err
	}
	backend, key, err := OpenBackend(ctx, loc, s3cfg)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	return sink.ReadNPY(ctx, backend, key)
}
