package fts

import (
	"fmt"
	"strings"

	binpkg "github.com/spectro-tools/go-fts/internal/binary"
)

// Display names of the data blocks an FTS file can carry.
const (
	BlockSpectrum      = "Data Block SpSm"
	BlockSpectrumSc    = "Data Block ScSm"
	BlockInterferogram = "Data Block IgSm"
	BlockTransmittance = "Data Block TrSm"
	BlockPhase         = "Data Block PhSm"
)

// BlockKind classifies a data block for axis derivation.
type BlockKind uint8

const (
	KindRawOther BlockKind = iota
	KindInterferogram
	KindSpectrum
	KindTransmittance
	KindPhase
)

func (k BlockKind) String() string {
	switch k {
	case KindInterferogram:
		return "interferogram"
	case KindSpectrum:
		return "spectrum"
	case KindTransmittance:
		return "transmittance"
	case KindPhase:
		return "phase"
	default:
		return "raw"
	}
}

// apodizationFactor is the assumed triangular-apodization factor used for
// the interferogram's optical-path-difference axis. The resulting axis is a
// display-grade estimate: the zero-path-difference position is not located,
// so the axis must not be treated as metrologically exact.
const apodizationFactor = 0.9

// DataBlock holds one bulk numeric array and its derived coordinate axis.
// len(Axis) == len(Values) always holds.
type DataBlock struct {
	Kind   BlockKind
	Name   string
	Axis   []float64
	Values []float32
}

// kindForName classifies a data-block display name by its kind suffix.
func kindForName(name string) BlockKind {
	switch {
	case strings.Contains(name, "IgSm"):
		return KindInterferogram
	case strings.Contains(name, "SpSm"), strings.Contains(name, "ScSm"):
		return KindSpectrum
	case strings.Contains(name, "TrSm"):
		return KindTransmittance
	case strings.Contains(name, "PhSm"):
		return KindPhase
	default:
		return KindRawOther
	}
}

// DataBlock reads the named bulk data block and derives its coordinate axis.
// Blocks are decoded on first request and cached for the session.
//
// Interferogram axes span [0, 2·0.9/RES] with RES taken from the
// acquisition parameters; spectral kinds span [FXV, LXV] from the matching
// data-parameters block. A missing RES/FXV/LXV fails the request with
// ErrMissingHeaderValue; a name without a kind mapping fails with
// ErrUnsupportedBlockKind. Neither failure invalidates the session.
func (f *File) DataBlock(name string) (*DataBlock, error) {
	if db, ok := f.cache[name]; ok {
		return db, nil
	}
	if f.closed {
		return nil, ErrClosed
	}

	entry, ok := f.dir.Block(name)
	if !ok {
		f.log.warnf("Could not find %s in file structure", name)
		return nil, fmt.Errorf("data block %q: %w", name, ErrNotFound)
	}

	kind := kindForName(name)
	if kind == KindRawOther {
		return nil, fmt.Errorf("data block %q: %w", name, ErrUnsupportedBlockKind)
	}

	f.log.appendf("Getting data block at %d with length %d", entry.Offset, entry.Length)
	values, err := binpkg.NewReader(f.file).At(int64(entry.Offset)).ReadFloat32Slice(int(entry.Length))
	if err != nil {
		return nil, fmt.Errorf("reading data block %q: %w: %v", name, ErrTruncated, err)
	}

	axis, err := f.deriveAxis(name, kind, len(values))
	if err != nil {
		return nil, err
	}

	db := &DataBlock{Kind: kind, Name: name, Axis: axis, Values: values}
	f.cache[name] = db
	return db, nil
}

// deriveAxis computes the coordinate axis for a data block of count points.
func (f *File) deriveAxis(name string, kind BlockKind, count int) ([]float64, error) {
	switch kind {
	case KindInterferogram:
		res, err := f.headerFloat("Acquisition Parameters", "RES")
		if err != nil {
			return nil, err
		}
		f.log.appendf("Deriving approximate optical path difference axis for %s", name)
		return interferogramAxis(count, res), nil
	case KindSpectrum, KindTransmittance, KindPhase:
		paramBlock := strings.Replace(name, "Data Block", "Data Parameters", 1)
		fxv, err := f.headerFloat(paramBlock, "FXV")
		if err != nil {
			return nil, err
		}
		lxv, err := f.headerFloat(paramBlock, "LXV")
		if err != nil {
			return nil, err
		}
		f.log.appendf("Deriving frequency axis for %s from %s", name, paramBlock)
		return linspace(fxv, lxv, count), nil
	default:
		return nil, fmt.Errorf("data block %q: %w", name, ErrUnsupportedBlockKind)
	}
}

// interferogramAxis spans [0, 2·apodizationFactor/res] evenly over count
// points. Display-grade only; see apodizationFactor.
func interferogramAxis(count int, res float64) []float64 {
	return linspace(0, 2*apodizationFactor/res, count)
}

// linspace returns count evenly spaced values from first to last inclusive.
func linspace(first, last float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	axis := make([]float64, count)
	if count == 1 {
		axis[0] = first
		return axis
	}
	step := (last - first) / float64(count-1)
	for i := range axis {
		axis[i] = first + float64(i)*step
	}
	axis[count-1] = last
	return axis
}

// ForwardInterferogram returns the forward-scan half of the interferogram.
// Available only when the instrument recorded exactly one good forward scan.
func (f *File) ForwardInterferogram() ([]float32, error) {
	ifg, err := f.DataBlock(BlockInterferogram)
	if err != nil {
		return nil, err
	}
	gfw, err := f.HeaderValue("Instrument Parameters", "GFW")
	if err != nil {
		return nil, fmt.Errorf("%w: Instrument Parameters/GFW", ErrMissingHeaderValue)
	}
	if n, ok := gfw.AsInt(); !ok || n != 1 {
		return nil, fmt.Errorf("forward interferogram: %w", ErrNoScans)
	}
	return ifg.Values[:len(ifg.Values)/2], nil
}

// BackwardInterferogram returns the backward-scan half of the
// interferogram, reversed into forward sample order.
func (f *File) BackwardInterferogram() ([]float32, error) {
	ifg, err := f.DataBlock(BlockInterferogram)
	if err != nil {
		return nil, err
	}
	gbw, err := f.HeaderValue("Instrument Parameters", "GBW")
	if err != nil {
		return nil, fmt.Errorf("%w: Instrument Parameters/GBW", ErrMissingHeaderValue)
	}
	if n, ok := gbw.AsInt(); !ok || n != 1 {
		return nil, fmt.Errorf("backward interferogram: %w", ErrNoScans)
	}
	half := ifg.Values[len(ifg.Values)/2:]
	out := make([]float32, len(half))
	for i, v := range half {
		out[len(half)-1-i] = v
	}
	return out, nil
}
