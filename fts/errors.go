// Package fts provides a pure Go reader for FTS spectrometer files: a
// block-directory binary container holding typed header parameters and raw
// numeric data arrays (interferograms, spectra, transmittance, phase).
package fts

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrBadMagic means the file does not start with the FTS magic bytes.
	// Fatal for the file; nothing past the first 4 bytes is read.
	ErrBadMagic = errors.New("not an FTS file")

	// ErrTruncated means the preamble or block directory could not be read
	// in full. Fatal for the file, since every downstream offset depends
	// on the directory.
	ErrTruncated = errors.New("truncated FTS structure")

	// ErrNotFound is returned when a block or parameter does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMissingHeaderValue means a header parameter required to derive a
	// coordinate axis is absent. Fatal for that one data-block request.
	ErrMissingHeaderValue = errors.New("missing header value")

	// ErrUnsupportedBlockKind means a data block's kind has no axis
	// derivation rule. Fatal for that one request.
	ErrUnsupportedBlockKind = errors.New("unsupported data block kind")

	// ErrEmptySliceSet means no slice file in a scan directory decoded
	// successfully.
	ErrEmptySliceSet = errors.New("no decodable slice files")

	// ErrNoScans is returned when a directional interferogram is requested
	// but the header records no scans in that direction.
	ErrNoScans = errors.New("no scans recorded in requested direction")

	// ErrClosed is returned when operating on a closed file.
	ErrClosed = errors.New("file is closed")
)

// AmbiguousTagError is returned by FindTag when a parameter tag is defined
// in more than one header block. The caller gets the full list of owning
// blocks instead of an arbitrarily chosen value.
type AmbiguousTagError struct {
	Tag    string
	Blocks []string
}

func (e *AmbiguousTagError) Error() string {
	return fmt.Sprintf("tag %q defined in multiple blocks: %s", e.Tag, strings.Join(e.Blocks, ", "))
}
