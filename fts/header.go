package fts

import (
	"fmt"
	"sort"

	"github.com/spectro-tools/go-fts/internal/param"
)

// Value is the tagged union holding one decoded header parameter: a 32-bit
// integer, a double, Latin-1 text, or a decode-error sentinel.
type Value = param.Value

// ValueKind discriminates the representations a Value can take.
type ValueKind = param.Kind

// Value kinds.
const (
	KindInt32   = param.KindInt32
	KindFloat64 = param.KindFloat64
	KindText    = param.KindText
	KindError   = param.KindError
)

// Header maps block display name to the block's decoded parameters.
// Built once at open time and immutable afterwards.
type Header map[string]map[string]Value

// HeaderValue returns the value of tag within the named header block.
func (f *File) HeaderValue(blockName, tag string) (Value, error) {
	block, ok := f.header[blockName]
	if !ok {
		return Value{}, fmt.Errorf("header block %q: %w", blockName, ErrNotFound)
	}
	v, ok := block[tag]
	if !ok {
		return Value{}, fmt.Errorf("parameter %q in block %q: %w", tag, blockName, ErrNotFound)
	}
	return v, nil
}

// FindTag searches every header block for tag. When exactly one block
// defines it, that value is returned along with the owning block's name.
// When several blocks define it, an *AmbiguousTagError listing all owners is
// returned instead of an arbitrarily chosen value.
func (f *File) FindTag(tag string) (Value, string, error) {
	owners := make([]string, 0, 1)
	for name, block := range f.header {
		if _, ok := block[tag]; ok {
			owners = append(owners, name)
		}
	}
	switch len(owners) {
	case 0:
		return Value{}, "", fmt.Errorf("parameter %q: %w", tag, ErrNotFound)
	case 1:
		return f.header[owners[0]][tag], owners[0], nil
	default:
		sort.Strings(owners)
		return Value{}, "", &AmbiguousTagError{Tag: tag, Blocks: owners}
	}
}

// Header returns the decoded header map. The map is shared with the session
// and must not be mutated.
func (f *File) Header() Header {
	return f.header
}

// headerFloat reads a numeric parameter required for axis derivation.
func (f *File) headerFloat(blockName, tag string) (float64, error) {
	v, err := f.HeaderValue(blockName, tag)
	if err != nil {
		return 0, fmt.Errorf("%w: %s/%s", ErrMissingHeaderValue, blockName, tag)
	}
	fv, ok := v.AsFloat()
	if !ok {
		return 0, fmt.Errorf("%w: %s/%s is not numeric (%s)", ErrMissingHeaderValue, blockName, tag, v)
	}
	return fv, nil
}
