package fts

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Segmented acquisitions store their slice files in this subdirectory of
// the measurement folder. Files with the metadata extension describe a
// slice but carry no interferogram and are excluded from aggregation.
const (
	sliceSubdir  = "scan"
	sliceMetaExt = ".info"
)

// Slice is one successfully decoded acquisition segment.
type Slice struct {
	// ID is the 8-character identifier embedded in the slice filename
	// (one leading metadata character, then the identifier).
	ID string

	// Values is the slice's interferogram.
	Values []float32
}

// SliceSet is the result of aggregating a segmented acquisition: the
// per-slice interferograms in sorted-filename order plus their
// concatenation as one composite interferogram. The set is built from a
// snapshot of the directory listing and is not updated if files change.
type SliceSet struct {
	Slices    []Slice
	Composite *DataBlock
	log       *sessionLog
}

// Log returns the aggregation's diagnostic log lines in append order.
func (s *SliceSet) Log() []string {
	return s.log.Lines()
}

// LoadSlices aggregates the slice files under parentPath/scan into one
// logical interferogram. Candidate files are processed in lexicographically
// sorted filename order; each slice is decoded by an independent single-file
// session, so one bad slice is skipped with a log entry and never aborts the
// aggregation. The composite axis is derived from the resolution recorded in
// the first successfully decoded slice, scaled to the composite's total
// sample count. If no slice decodes, ErrEmptySliceSet is returned; an empty
// composite is never reported as success.
func LoadSlices(parentPath string, opts ...Option) (*SliceSet, error) {
	o := defaultFileOptions()
	for _, opt := range opts {
		opt(o)
	}

	log := newSessionLog(o.logger)
	scanDir := filepath.Join(parentPath, sliceSubdir)
	log.appendf("Loading slices from %s", scanDir)

	entries, err := os.ReadDir(scanDir)
	if err != nil {
		return nil, fmt.Errorf("listing slice directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	set := &SliceSet{log: log}
	var (
		total    int
		firstRes float64
	)

	for _, name := range names {
		if strings.HasSuffix(name, sliceMetaExt) {
			continue
		}
		id, ok := sliceID(name)
		if !ok {
			log.warnf("Skipping %s: filename too short to carry a slice identifier", name)
			continue
		}

		values, res, err := decodeSlice(filepath.Join(scanDir, name), o.logger)
		if err != nil {
			log.warnf("Skipping slice %s: %v", name, err)
			continue
		}

		if len(set.Slices) == 0 {
			firstRes = res
		}
		set.Slices = append(set.Slices, Slice{ID: id, Values: values})
		total += len(values)
		log.appendf("Decoded slice %s (%d samples)", id, len(values))
	}

	if len(set.Slices) == 0 {
		log.warnf("Error loading slices from %s", parentPath)
		return nil, fmt.Errorf("%s: %w", parentPath, ErrEmptySliceSet)
	}

	composite := make([]float32, 0, total)
	for _, s := range set.Slices {
		composite = append(composite, s.Values...)
	}
	set.Composite = &DataBlock{
		Kind:   KindInterferogram,
		Name:   BlockInterferogram,
		Axis:   interferogramAxis(len(composite), firstRes),
		Values: composite,
	}
	log.appendf("Concatenated %d slices into %d samples", len(set.Slices), total)

	return set, nil
}

// sliceID extracts the 8-character identifier that follows the single
// leading metadata character of a slice filename.
func sliceID(name string) (string, bool) {
	r := []rune(name)
	if len(r) < 9 {
		return "", false
	}
	return string(r[1:9]), true
}

// decodeSlice runs the full single-file pipeline on one slice and returns
// its interferogram plus the resolution from its header. Each call builds
// an independent session; no state is shared across slice iterations.
func decodeSlice(path string, logger *slog.Logger) ([]float32, float64, error) {
	var opts []Option
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}
	f, err := Open(path, opts...)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	if !f.HasBlock(BlockInterferogram) {
		return nil, 0, fmt.Errorf("data block %q: %w", BlockInterferogram, ErrNotFound)
	}
	db, err := f.DataBlock(BlockInterferogram)
	if err != nil {
		return nil, 0, err
	}
	res, err := f.headerFloat("Acquisition Parameters", "RES")
	if err != nil {
		return nil, 0, err
	}
	return db.Values, res, nil
}
