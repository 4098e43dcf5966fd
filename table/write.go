package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes header then one record per row. Values use the shortest
// representation that round-trips ('g', -1). A nil header writes none.
func WriteCSV(w io.Writer, header []string, rows [][]float64) error {
	cw := csv.NewWriter(w)
	if header != nil {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	rec := make([]string, 0)
	for k, row := range rows {
		if header != nil && len(row) != len(header) {
			return fmt.Errorf("table: row %d has %d values, header %d", k, len(row), len(header))
		}
		rec = rec[:0]
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteIDs writes a one-column CSV of identifiers under name.
func WriteIDs(w io.Writer, name string, ids []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{name}); err != nil {
		return err
	}
	for _, id := range ids {
		if err := cw.Write([]string{id}); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// Header returns prefix1 … prefixN, the column names WriteCSV callers use
// for generated tables.
func Header(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = prefix + strconv.Itoa(i+1)
	}

	return out
}
