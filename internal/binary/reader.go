// Package binary provides low-level binary I/O operations for FTS file parsing.
//
// FTS files are always little-endian with fixed-width fields, so the reader
// carries no byte-order or field-size configuration; it is a positional
// cursor over an io.ReaderAt.
package binary

import (
	"encoding/binary"
	"io"
	"math"
)

// Reader provides methods for reading little-endian FTS binary data.
// Each Reader has an independent position over a shared io.ReaderAt.
type Reader struct {
	r   io.ReaderAt
	pos int64
}

// NewReader creates a binary reader positioned at the start of the source.
func NewReader(r io.ReaderAt) *Reader {
	return &Reader{r: r, pos: 0}
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying io.ReaderAt but has independent position.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{r: r.r, pos: offset}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int64) {
	r.pos += n
}

// ReadBytes reads exactly n bytes from the current position.
// A short read is reported as io.EOF so callers see one truncation error.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	m, err := r.r.ReadAt(buf, r.pos)
	if m < n {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return nil, err
	}
	r.pos += int64(n)
	return buf, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	buf, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// ReadInt32 reads a signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(buf)), nil
}

// ReadFloat64 reads an IEEE-754 double-precision float.
func (r *Reader) ReadFloat64() (float64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf)), nil
}

// ReadFloat32Slice reads n consecutive single-precision floats.
func (r *Reader) ReadFloat32Slice(n int) ([]float32, error) {
	if n <= 0 {
		return nil, nil
	}
	buf, err := r.ReadBytes(n * 4)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out, nil
}

// Peek reads n bytes without advancing the position.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	m, err := r.r.ReadAt(buf, r.pos)
	if m < n {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return nil, err
	}
	return buf, nil
}
