package table

import "io"

// MemorySource serves rows from memory in order.
type MemorySource struct {
	rows [][]float64
	pos  int
}

// NewMemorySource wraps rows without copying. The series length reported
// by Dims is that of the first row.
func NewMemorySource(rows [][]float64) *MemorySource {
	return &MemorySource{rows: rows}
}

// Dims reports the row count and the length of the first row.
func (s *MemorySource) Dims() (rows, length int) {
	if len(s.rows) == 0 {
		return 0, 0
	}
	return len(s.rows), len(s.rows[0])
}

// Next returns the next row or io.EOF.
func (s *MemorySource) Next() ([]float64, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++

	return row, nil
}

// Reset rewinds the source to the first row.
func (s *MemorySource) Reset() { s.pos = 0 }
