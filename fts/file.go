package fts

import (
	"fmt"
	"os"
	"sort"

	"github.com/spectro-tools/go-fts/internal/param"
	"github.com/spectro-tools/go-fts/internal/structure"
)

// File represents one open FTS file: its block catalog, decoded header
// parameters, and lazily read data blocks. A File is a single decode
// session; it owns its catalog and header exclusively and is not safe for
// concurrent use.
type File struct {
	path   string
	file   *os.File
	dir    *structure.Directory
	header Header
	log    *sessionLog
	cache  map[string]*DataBlock
	closed bool
}

// Open opens an FTS file, validates its magic bytes, scans the block
// directory and decodes every header block. Structural failures (bad magic,
// truncated preamble or directory) abort the open; per-record decode
// failures are logged in the session log and skipped.
func Open(path string, opts ...Option) (*File, error) {
	o := defaultFileOptions()
	for _, opt := range opts {
		opt(o)
	}

	log := newSessionLog(o.logger)
	log.appendf("Initializing session for %s", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	if err := structure.CheckMagic(f); err != nil {
		log.warnf("Bad magic in %s", path)
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrBadMagic, path)
	}
	log.appendf("Identified %s as FTS file", path)

	log.appendf("Reading structure of file")
	dir, err := structure.Scan(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	for _, name := range dir.Order {
		e := dir.Entries[name]
		log.appendf("Found block %d, %d and identified as %s", e.PrimaryCode, e.SecondaryCode, name)
	}
	for _, c := range dir.Collisions {
		log.warnf("Directory name collision on %q: entry at offset %d replaced by a later record", c.Name, c.Previous.Offset)
	}

	file := &File{
		path:  path,
		file:  f,
		dir:   dir,
		log:   log,
		cache: make(map[string]*DataBlock),
	}
	file.readHeader()
	file.preload(o)

	return file, nil
}

// readHeader decodes the parameters of every eligible header block: not a
// data block, not a placeholder, declared length positive.
func (f *File) readHeader() {
	f.log.appendf("Reading Header ...")
	f.header = make(Header)
	for _, name := range f.dir.Order {
		e := f.dir.Entries[name]
		if structure.IsDataBlock(name) || structure.IsPlaceholder(name) || e.Length <= 0 {
			continue
		}
		f.log.appendf("Reading Header Block: %s", name)
		res := param.DecodeBlock(f.file, int64(e.Offset))
		for _, note := range res.Notes {
			f.log.warnf("Header Block %s: %s", name, note)
		}
		f.header[name] = res.Params
	}
}

// preload eagerly decodes the data blocks requested through options,
// matching the session log wording callers of the original tooling expect.
func (f *File) preload(o *fileOptions) {
	load := func(name, what string) {
		if _, err := f.DataBlock(name); err != nil {
			f.log.warnf("Loading %s failed: %v", what, err)
		}
	}

	if o.wantSpectrum {
		switch {
		case f.HasBlock(BlockSpectrum):
			load(BlockSpectrum, "spectrum")
		case f.HasBlock(BlockSpectrumSc):
			f.log.appendf("Using ScSm data block instead of SpSm")
			load(BlockSpectrumSc, "spectrum")
		default:
			f.log.appendf("No Spectrum requested or not found ... skipping.")
		}
	} else {
		f.log.appendf("No Spectrum requested or not found ... skipping.")
	}

	if o.wantTransmittance && f.HasBlock(BlockTransmittance) {
		load(BlockTransmittance, "transmittance")
	} else {
		f.log.appendf("No Transmissionspectrum requested or not found ... skipping.")
	}

	if o.wantPhase && f.HasBlock(BlockPhase) {
		load(BlockPhase, "phase spectrum")
	} else {
		f.log.appendf("No Phasespectrum requested or not found ... skipping.")
	}

	if o.wantInterferogram && f.HasBlock(BlockInterferogram) {
		load(BlockInterferogram, "interferogram")
	} else {
		f.log.appendf("No Interferogram requested or not found ... skipping.")
	}
}

// Close closes the underlying file. Decoded catalog, header and cached data
// blocks remain readable.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.file.Close()
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// HasBlock reports whether the block directory contains a display name.
func (f *File) HasBlock(name string) bool {
	_, ok := f.dir.Block(name)
	return ok
}

// Blocks returns the catalog entries in directory order.
func (f *File) Blocks() []Block {
	out := make([]Block, 0, len(f.dir.Order))
	seen := make(map[string]bool, len(f.dir.Order))
	for _, name := range f.dir.Order {
		if seen[name] {
			continue
		}
		seen[name] = true
		e := f.dir.Entries[name]
		out = append(out, Block{
			Name:          e.Name,
			PrimaryCode:   e.PrimaryCode,
			SecondaryCode: e.SecondaryCode,
			Length:        e.Length,
			Offset:        e.Offset,
		})
	}
	return out
}

// Collisions returns the display names that were claimed by more than one
// directory record. Empty for well-formed files.
func (f *File) Collisions() []string {
	names := make([]string, 0, len(f.dir.Collisions))
	for _, c := range f.dir.Collisions {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// Log returns the session's diagnostic log lines in append order.
func (f *File) Log() []string {
	return f.log.Lines()
}

// Block is the public view of one directory entry.
type Block struct {
	Name          string
	PrimaryCode   uint8
	SecondaryCode uint8
	Length        int32
	Offset        int32
}
