package structure

import (
	"fmt"
	"strings"
)

// primaryNames maps the primary block code to its display name. Code 0 is
// present in every file but its contents are unidentified; it is kept under
// the generic name rather than decoded further.
var primaryNames = map[uint8]string{
	160: "Sample Parameters",
	23:  "Data Parameters",
	96:  "Optic Parameters",
	64:  "FT Parameters",
	48:  "Acquisition Parameters",
	32:  "Instrument Parameters",
	7:   "Data Block",
	0:   "something",
}

// secondarySuffixes maps the decoded secondary code to a name suffix.
var secondarySuffixes = map[uint8]string{
	132: " ScSm",
	4:   " SpSm",
	8:   " IgSm",
	20:  " TrSm",
	12:  " PhSm",
}

// secondaryRawSuffixes maps the raw secondary byte to a suffix for the
// second-channel variants. The source environment kept these two entries
// keyed on raw bytes instead of decoded numbers; it is unverified whether
// both tables can match the same record in valid files, so both lookup
// paths are kept and exposed separately. Note 0x84 also appears in the
// decoded table as 132, which takes precedence.
var secondaryRawSuffixes = map[byte]string{
	0x84: " SpSm/2.Chn.",
	0x88: " IgSm/2.Chn.",
}

// SuffixByCode resolves a secondary-code suffix via the decoded numeric path.
func SuffixByCode(code uint8) (string, bool) {
	s, ok := secondarySuffixes[code]
	return s, ok
}

// SuffixByRawByte resolves a secondary-code suffix via the raw byte path.
func SuffixByRawByte(b byte) (string, bool) {
	s, ok := secondaryRawSuffixes[b]
	return s, ok
}

// ResolveName derives the display name for a directory record. Unknown
// primary codes and the ever-present code 0 get an explicit length suffix
// so distinct placeholder entries do not collide.
func ResolveName(primary, secondary uint8, length int32) string {
	name, known := primaryNames[primary]
	if !known {
		name = fmt.Sprintf("[unknown block %d]", primary)
	}

	if suffix, ok := SuffixByCode(secondary); ok {
		name += suffix
	} else if suffix, ok := SuffixByRawByte(secondary); ok {
		name += suffix
	}

	if primary == 0 || !known {
		name += fmt.Sprintf(" len %3d", length)
	}
	return name
}

// IsDataBlock reports whether a display name designates a bulk data block.
func IsDataBlock(name string) bool {
	return strings.HasPrefix(name, "Data Block")
}

// IsPlaceholder reports whether a display name designates an unidentified
// block that carries no decodable parameters.
func IsPlaceholder(name string) bool {
	return strings.Contains(name, "unknown") || strings.Contains(name, "something")
}
