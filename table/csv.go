package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
)

// DefaultMissing are the cell values decoded as NaN.
var DefaultMissing = []string{"", "NA", "NaN", "nan"}

// CSVOption configures a CSVSource.
type CSVOption func(*csvConfig)

type csvConfig struct {
	drop    []string
	idCol   string
	missing []string
	comma   rune
}

// WithDropColumns removes the named columns before values reach the
// pipeline. Unknown names fail OpenCSV with ErrColumn.
func WithDropColumns(names ...string) CSVOption {
	return func(c *csvConfig) { c.drop = append(c.drop, names...) }
}

// WithIDColumn drops the named column and records its values, in row
// order, for IDs.
func WithIDColumn(name string) CSVOption {
	return func(c *csvConfig) { c.idCol = name }
}

// WithMissingTokens replaces DefaultMissing.
func WithMissingTokens(tokens ...string) CSVOption {
	return func(c *csvConfig) { c.missing = slices.Clone(tokens) }
}

// WithComma sets the field delimiter (default ',').
func WithComma(r rune) CSVOption {
	return func(c *csvConfig) { c.comma = r }
}

// CSVSource is a wide numeric CSV: one header, one series per record.
// The whole file is read by OpenCSV so row count is known up front;
// cells are parsed lazily by Next.
type CSVSource struct {
	header  []string // kept value columns
	keep    []int    // record index of each kept column
	ids     []string
	records [][]string
	missing map[string]struct{}
	pos     int
}

// OpenCSV reads a header and every record from r.
// Errors: ErrColumn (drop/id column absent), ErrEmpty, csv.ParseError.
func OpenCSV(r io.Reader, opts ...CSVOption) (*CSVSource, error) {
	cfg := csvConfig{missing: DefaultMissing, comma: ','}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	cr := csv.NewReader(r)
	cr.Comma = cfg.comma
	all, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table: read csv: %w", err)
	}
	if len(all) == 0 {
		return nil, ErrEmpty
	}
	head := all[0]

	dropped := make([]bool, len(head))
	for _, name := range cfg.drop {
		i := slices.Index(head, name)
		if i < 0 {
			return nil, fmt.Errorf("table: drop %q: %w", name, ErrColumn)
		}
		dropped[i] = true
	}
	idIdx := -1
	if cfg.idCol != "" {
		if idIdx = slices.Index(head, cfg.idCol); idIdx < 0 {
			return nil, fmt.Errorf("table: id %q: %w", cfg.idCol, ErrColumn)
		}
		dropped[idIdx] = true
	}

	s := &CSVSource{records: all[1:], missing: make(map[string]struct{}, len(cfg.missing))}
	for _, tok := range cfg.missing {
		s.missing[tok] = struct{}{}
	}
	for i, name := range head {
		if !dropped[i] {
			s.header = append(s.header, name)
			s.keep = append(s.keep, i)
		}
	}
	if len(s.keep) == 0 {
		return nil, ErrEmpty
	}
	if idIdx >= 0 {
		s.ids = make([]string, len(s.records))
		for k, rec := range s.records {
			s.ids[k] = rec[idIdx]
		}
	}

	return s, nil
}

// OpenCSVFile is OpenCSV over the file at path.
func OpenCSVFile(path string, opts ...CSVOption) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return OpenCSV(f, opts...)
}

// Dims reports the record count and the number of kept columns.
func (s *CSVSource) Dims() (rows, length int) { return len(s.records), len(s.keep) }

// Columns returns the kept column names in order.
func (s *CSVSource) Columns() []string { return slices.Clone(s.header) }

// IDs returns the identifier column values in row order, or nil when no
// identifier column was configured.
func (s *CSVSource) IDs() []string { return slices.Clone(s.ids) }

// Next parses and returns the next record's kept cells, or io.EOF.
// Errors: ErrParse with the 1-based file line and column name.
func (s *CSVSource) Next() ([]float64, error) {
	if s.pos >= len(s.records) {
		return nil, io.EOF
	}
	rec := s.records[s.pos]
	line := s.pos + 2
	s.pos++

	out := make([]float64, len(s.keep))
	for j, idx := range s.keep {
		cell := strings.TrimSpace(rec[idx])
		if _, miss := s.missing[cell]; miss {
			out[j] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("table: line %d column %q: %q: %w", line, s.header[j], cell, ErrParse)
		}
		out[j] = v
	}

	return out, nil
}

// Reset rewinds to the first record.
func (s *CSVSource) Reset() { s.pos = 0 }

// ReadColumn reads one numeric column of a long CSV as a single series.
// Missing tokens decode to NaN.
// Errors: ErrColumn, ErrEmpty, ErrParse.
func ReadColumn(r io.Reader, column string, opts ...CSVOption) ([]float64, error) {
	cfg := csvConfig{missing: DefaultMissing, comma: ','}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cr := csv.NewReader(r)
	cr.Comma = cfg.comma
	head, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("table: read csv: %w", err)
	}
	idx := slices.Index(head, column)
	if idx < 0 {
		return nil, fmt.Errorf("table: column %q: %w", column, ErrColumn)
	}

	var out []float64
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("table: read csv: %w", err)
		}
		cell := strings.TrimSpace(rec[idx])
		if slices.Contains(cfg.missing, cell) {
			out = append(out, math.NaN())
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("table: line %d column %q: %q: %w", line, column, cell, ErrParse)
		}
		out = append(out, v)
	}
}
