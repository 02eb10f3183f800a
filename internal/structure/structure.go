// Package structure handles validation and block-directory scanning of FTS
// container files.
//
// An FTS file starts with a fixed 24-byte preamble whose fourth field points
// at a directory of 8-byte block records. Every downstream offset comes from
// this directory, so any truncation here is fatal for the whole file.
package structure

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	binpkg "github.com/spectro-tools/go-fts/internal/binary"
)

// Magic is the fixed 4-byte sequence identifying a valid FTS file.
var Magic = []byte{0x0A, 0x0A, 0xFE, 0xFE}

// DataElementSize is the byte width of one bulk data element. The directory
// length field counts float32 elements for data blocks, not bytes.
const DataElementSize = 4

// Errors
var (
	ErrBadMagic  = errors.New("not an FTS file: bad magic")
	ErrTruncated = errors.New("truncated FTS structure")
)

// Entry describes one block located by the directory scan.
type Entry struct {
	// PrimaryCode selects the block family (parameter set, data block, ...).
	PrimaryCode uint8

	// SecondaryCode differentiates data kinds (spectrum, interferogram, ...).
	SecondaryCode uint8

	// Length is the block length as declared by the directory. Parameter
	// blocks measure it in 2-byte words consumed record by record; data
	// blocks measure float32 elements (see DataElementSize).
	Length int32

	// Offset is the absolute file offset of the block payload.
	Offset int32

	// Name is the display name derived from the code tables.
	Name string
}

// Collision records two directory entries resolving to the same display name.
// The catalog keeps the later entry; the earlier one is preserved here so the
// event stays observable instead of being silently overwritten.
type Collision struct {
	Name     string
	Previous Entry
}

// Directory is the catalog of blocks found in one file. It is built once by
// Scan and never mutated afterwards.
type Directory struct {
	// Entries maps display name to block location. Last write wins on
	// name collisions.
	Entries map[string]Entry

	// Order lists display names in directory order, duplicates included.
	Order []string

	// Collisions lists every overwritten entry, in scan order.
	Collisions []Collision
}

// Block returns the entry for a display name.
func (d *Directory) Block(name string) (Entry, bool) {
	e, ok := d.Entries[name]
	return e, ok
}

// CheckMagic reads the first 4 bytes of the source and verifies the FTS
// magic sequence. Short reads and I/O errors report ErrBadMagic wrapped with
// the cause; the caller never sees a panic from here.
func CheckMagic(r io.ReaderAt) error {
	buf := make([]byte, len(Magic))
	if n, err := r.ReadAt(buf, 0); n < len(Magic) {
		if err == nil {
			err = io.EOF
		}
		return fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if !bytes.Equal(buf, Magic) {
		return fmt.Errorf("%w: got % x", ErrBadMagic, buf)
	}
	return nil
}

// Scan reads the preamble and block directory and returns the catalog.
// The source must already have passed CheckMagic.
//
// Preamble layout, six little-endian int32:
//
//	0   magic (repeated as an integer)
//	4   unidentified
//	8   unidentified
//	12  offset of first directory record
//	16  unidentified
//	20  number of directory records
func Scan(r io.ReaderAt) (*Directory, error) {
	br := binpkg.NewReader(r)

	var preamble [6]int32
	for i := range preamble {
		v, err := br.ReadInt32()
		if err != nil {
			return nil, fmt.Errorf("%w: preamble: %v", ErrTruncated, err)
		}
		preamble[i] = v
	}
	firstDirOffset := preamble[3]
	blockCount := preamble[5]

	if firstDirOffset < 0 || blockCount < 0 {
		return nil, fmt.Errorf("%w: negative directory offset or count", ErrTruncated)
	}

	dir := &Directory{Entries: make(map[string]Entry, blockCount)}
	dr := br.At(int64(firstDirOffset))

	for i := int32(0); i < blockCount; i++ {
		primary, err := dr.ReadUint8()
		if err != nil {
			return nil, fmt.Errorf("%w: directory record %d: %v", ErrTruncated, i, err)
		}
		secondary, err := dr.ReadUint8()
		if err != nil {
			return nil, fmt.Errorf("%w: directory record %d: %v", ErrTruncated, i, err)
		}
		if _, err := dr.ReadUint16(); err != nil { // reserved
			return nil, fmt.Errorf("%w: directory record %d: %v", ErrTruncated, i, err)
		}
		length, err := dr.ReadInt32()
		if err != nil {
			return nil, fmt.Errorf("%w: directory record %d: %v", ErrTruncated, i, err)
		}
		offset, err := dr.ReadInt32()
		if err != nil {
			return nil, fmt.Errorf("%w: directory record %d: %v", ErrTruncated, i, err)
		}

		name := ResolveName(primary, secondary, length)
		entry := Entry{
			PrimaryCode:   primary,
			SecondaryCode: secondary,
			Length:        length,
			Offset:        offset,
			Name:          name,
		}
		if prev, ok := dir.Entries[name]; ok {
			dir.Collisions = append(dir.Collisions, Collision{Name: name, Previous: prev})
		}
		dir.Entries[name] = entry
		dir.Order = append(dir.Order, name)
	}

	return dir, nil
}
