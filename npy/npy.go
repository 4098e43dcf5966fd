package npy

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	magic     = "\x93NUMPY"
	preamble  = len(magic) + 2 + 2 // magic, version, header length
	alignment = 64
	valueSize = 8
)

// Header returns the complete v1.0 header for a '<f8' C-order tensor.
func Header(shape []int) ([]byte, error) {
	if _, err := count(shape); err != nil {
		return nil, err
	}
	dict := fmt.Sprintf("{'descr': '<f8', 'fortran_order': False, 'shape': %s, }", shapeTuple(shape))
	total := preamble + len(dict) + 1
	pad := (alignment - total%alignment) % alignment
	hlen := len(dict) + pad + 1
	if hlen > math.MaxUint16 {
		return nil, fmt.Errorf("npy: header of %d bytes: %w", hlen, ErrShape)
	}

	out := make([]byte, 0, preamble+hlen)
	out = append(out, magic...)
	out = append(out, 1, 0)
	out = binary.LittleEndian.AppendUint16(out, uint16(hlen))
	out = append(out, dict...)
	out = append(out, strings.Repeat(" ", pad)...)
	out = append(out, '\n')

	return out, nil
}

// HeaderLen returns len(Header(shape)) without building the header.
func HeaderLen(shape []int) (int, error) {
	h, err := Header(shape)
	return len(h), err
}

// Write encodes shape and data to w in one call.
// Errors: ErrShape when len(data) != product(shape).
func Write(w io.Writer, shape []int, data []float64) error {
	enc, err := NewEncoder(w, shape)
	if err != nil {
		return err
	}
	if err = enc.Write(data); err != nil {
		return err
	}

	return enc.Close()
}

// Encoder streams values after a header. Close must be called to flush
// and to verify the value count.
type Encoder struct {
	bw      *bufio.Writer
	want    int
	written int
	buf     [valueSize]byte
}

// NewEncoder writes the header for shape to w.
func NewEncoder(w io.Writer, shape []int) (*Encoder, error) {
	n, err := count(shape)
	if err != nil {
		return nil, err
	}
	h, err := Header(shape)
	if err != nil {
		return nil, err
	}
	bw := bufio.NewWriterSize(w, 1<<16)
	if _, err = bw.Write(h); err != nil {
		return nil, err
	}

	return &Encoder{bw: bw, want: n}, nil
}

// Write appends values in C order.
// Errors: ErrShape when more values than the shape holds are written.
func (e *Encoder) Write(values []float64) error {
	if e.written+len(values) > e.want {
		return fmt.Errorf("npy: %d values exceed %d: %w", e.written+len(values), e.want, ErrShape)
	}
	for _, v := range values {
		binary.LittleEndian.PutUint64(e.buf[:], math.Float64bits(v))
		if _, err := e.bw.Write(e.buf[:]); err != nil {
			return err
		}
	}
	e.written += len(values)

	return nil
}

// Close flushes buffered bytes and checks that the shape is complete.
func (e *Encoder) Close() error {
	if err := e.bw.Flush(); err != nil {
		return err
	}
	if e.written != e.want {
		return fmt.Errorf("npy: wrote %d of %d values: %w", e.written, e.want, ErrShape)
	}

	return nil
}

var (
	reDescr   = regexp.MustCompile(`'descr':\s*'([^']*)'`)
	reFortran = regexp.MustCompile(`'fortran_order':\s*(True|False)`)
	reShape   = regexp.MustCompile(`'shape':\s*\(([^)]*)\)`)
)

// Read decodes a v1.0 '<f8' C-order file.
func Read(r io.Reader) (shape []int, data []float64, err error) {
	br := bufio.NewReader(r)
	pre := make([]byte, preamble)
	if _, err = io.ReadFull(br, pre); err != nil {
		return nil, nil, fmt.Errorf("npy: preamble: %w", err)
	}
	if string(pre[:len(magic)]) != magic || pre[6] != 1 || pre[7] != 0 {
		return nil, nil, fmt.Errorf("npy: magic/version %q: %w", pre[:8], ErrFormat)
	}
	dict := make([]byte, binary.LittleEndian.Uint16(pre[8:]))
	if _, err = io.ReadFull(br, dict); err != nil {
		return nil, nil, fmt.Errorf("npy: header: %w", err)
	}
	if shape, err = parseDict(string(dict)); err != nil {
		return nil, nil, err
	}

	n, _ := count(shape)
	data = make([]float64, n)
	var buf [valueSize]byte
	for i := range data {
		if _, err = io.ReadFull(br, buf[:]); err != nil {
			return nil, nil, fmt.Errorf("npy: value %d of %d: %w", i, n, err)
		}
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[:]))
	}

	return shape, data, nil
}

// parseDict extracts the shape of a '<f8' C-order header dict.
func parseDict(dict string) ([]int, error) {
	d := reDescr.FindStringSubmatch(dict)
	if d == nil || d[1] != "<f8" {
		return nil, fmt.Errorf("npy: descr: %w", ErrFormat)
	}
	f := reFortran.FindStringSubmatch(dict)
	if f == nil || f[1] != "False" {
		return nil, fmt.Errorf("npy: fortran_order: %w", ErrFormat)
	}
	s := reShape.FindStringSubmatch(dict)
	if s == nil {
		return nil, fmt.Errorf("npy: shape: %w", ErrFormat)
	}

	var shape []int
	for _, part := range strings.Split(s[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("npy: shape %q: %w", s[1], ErrFormat)
		}
		shape = append(shape, v)
	}
	if shape == nil {
		shape = []int{}
	}

	return shape, nil
}

// count returns the product of shape, rejecting negative dimensions.
func count(shape []int) (int, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("npy: shape %v: %w", shape, ErrShape)
		}
		n *= d
	}

	return n, nil
}

// shapeTuple renders shape as a Python tuple literal: (), (n,), (a, b).
func shapeTuple(shape []int) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.Itoa(d)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
