package table_test

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/mtfield"
	"github.com/katalvlaran/mtfield/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wide = `SEQN,m1,m2,m3,m4
1001,0,5,12.5,3
1002,NA,1,2,3
1003,4,,nan,1e2
`

// TestCSVSource_DropsIdentifier keeps only value columns and exposes IDs.
func TestCSVSource_DropsIdentifier(t *testing.T) {
	src, err := table.OpenCSV(strings.NewReader(wide), table.WithIDColumn("SEQN"))
	require.NoError(t, err)

	rows, n := src.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, n)
	assert.Equal(t, []string{"m1", "m2", "m3", "m4"}, src.Columns())
	assert.Equal(t, []string{"1001", "1002", "1003"}, src.IDs())

	row, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 5, 12.5, 3}, row)

	row, err = src.Next()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(row[0]))
	assert.Equal(t, []float64{1, 2, 3}, row[1:])

	row, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, 4.0, row[0])
	assert.True(t, math.IsNaN(row[1]))
	assert.True(t, math.IsNaN(row[2]))
	assert.Equal(t, 100.0, row[3])

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)

	src.Reset()
	row, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, 0.0, row[0])
}

// TestCSVSource_DropColumns removes several columns without IDs.
func TestCSVSource_DropColumns(t *testing.T) {
	src, err := table.OpenCSV(strings.NewReader(wide), table.WithDropColumns("SEQN", "m4"))
	require.NoError(t, err)
	_, n := src.Dims()
	assert.Equal(t, 3, n)
	assert.Nil(t, src.IDs())

	_, err = table.OpenCSV(strings.NewReader(wide), table.WithDropColumns("RIDAGEYR"))
	assert.ErrorIs(t, err, table.ErrColumn)
}

// TestCSVSource_ParseError reports the line and column.
func TestCSVSource_ParseError(t *testing.T) {
	src, err := table.OpenCSV(strings.NewReader("a,b\n1,2\n3,x\n"))
	require.NoError(t, err)
	_, err = src.Next()
	require.NoError(t, err)

	_, err = src.Next()
	assert.ErrorIs(t, err, table.ErrParse)
	assert.ErrorIs(t, err, mtfield.ErrInvalidInput)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), `"b"`)
}

// TestCSVSource_Malformed rejects ragged and empty input.
func TestCSVSource_Malformed(t *testing.T) {
	_, err := table.OpenCSV(strings.NewReader("a,b\n1,2,3\n"))
	assert.Error(t, err)

	_, err = table.OpenCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, table.ErrEmpty)

	_, err = table.OpenCSV(strings.NewReader("SEQN\n1\n"), table.WithIDColumn("SEQN"))
	assert.ErrorIs(t, err, table.ErrEmpty)
}

// TestCSVSource_Semicolon honors a custom delimiter and missing tokens.
func TestCSVSource_Semicolon(t *testing.T) {
	src, err := table.OpenCSV(strings.NewReader("a;b\n1;-\n"), table.WithComma(';'), table.WithMissingTokens("-"))
	require.NoError(t, err)
	row, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, 1.0, row[0])
	assert.True(t, math.IsNaN(row[1]))
}

// TestReadColumn extracts one long-format column.
func TestReadColumn(t *testing.T) {
	long := "minute,activity\n1,0\n2,35\n3,NA\n4,12\n"
	s, err := table.ReadColumn(strings.NewReader(long), "activity")
	require.NoError(t, err)
	require.Len(t, s, 4)
	assert.Equal(t, []float64{0, 35}, s[:2])
	assert.True(t, math.IsNaN(s[2]))

	_, err = table.ReadColumn(strings.NewReader(long), "steps")
	assert.ErrorIs(t, err, table.ErrColumn)

	_, err = table.ReadColumn(strings.NewReader("activity\nlow\n"), "activity")
	assert.ErrorIs(t, err, table.ErrParse)
}

// TestMemorySource serves rows in order and reports Dims.
func TestMemorySource(t *testing.T) {
	src := table.NewMemorySource([][]float64{{1, 2, 3}, {4, 5, 6}})
	rows, n := src.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, n)

	r, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, r)
	_, _ = src.Next()
	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)

	rows, n = table.NewMemorySource(nil).Dims()
	assert.Zero(t, rows)
	assert.Zero(t, n)
}

// TestWriteCSV_RoundTrip re-reads what WriteCSV produced.
func TestWriteCSV_RoundTrip(t *testing.T) {
	rows := [][]float64{{0.1, 2, -3.5}, {1e-9, 0, 7}}
	var buf bytes.Buffer
	require.NoError(t, table.WriteCSV(&buf, table.Header("m", 3), rows))
	assert.True(t, strings.HasPrefix(buf.String(), "m1,m2,m3\n"))

	src, err := table.OpenCSV(&buf)
	require.NoError(t, err)
	for _, want := range rows {
		got, err := src.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.Error(t, table.WriteCSV(io.Discard, []string{"a"}, [][]float64{{1, 2}}))
}

// TestWriteIDs writes a header plus one value per line.
func TestWriteIDs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, table.WriteIDs(&buf, "SEQN", []string{"1001", "1002"}))
	assert.Equal(t, "SEQN\n1001\n1002\n", buf.String())
}
