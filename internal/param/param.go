// Package param decodes the tagged parameter records stored inside FTS
// header blocks.
//
// Records are tag-length-value encoded: a fixed 8-byte preamble carrying a
// 4-character tag, a type code and a payload length in 16-bit words, then
// the payload itself. A block ends at the "END" tag or at the first record
// declaring a non-positive payload.
package param

import (
	"fmt"
	"io"
	"math"

	binpkg "github.com/spectro-tools/go-fts/internal/binary"
)

// WordSize converts a record's declared wordLength to payload bytes.
// Parameter payload sizes are measured in 2-byte words, unlike the element
// counts used by bulk data blocks.
const WordSize = 2

// recordPreambleSize is the fixed size of a record preamble:
// 4 tag bytes, uint16 type code, uint16 word length.
const recordPreambleSize = 8

// Record is the verbose form of one decoded parameter, retaining the raw
// location for diagnostics.
type Record struct {
	Tag        string
	TypeCode   uint16
	WordLength uint16
	Offset     int64 // absolute file offset of the record preamble
	Value      Value
}

// Result holds the outcome of decoding one header block. Notes carry one
// line per skipped or substituted record; nothing is dropped silently.
type Result struct {
	Params  map[string]Value
	Records []Record
	Notes   []string
}

// DecodeBlock decodes all parameter records of the block starting at offset.
// Malformed records are skipped with a note; records decoded before a
// mid-block truncation are kept as a valid partial result. Duplicate tags
// within one block are not ruled out by the format; the last one wins.
func DecodeBlock(r io.ReaderAt, offset int64) *Result {
	res := &Result{Params: make(map[string]Value)}
	br := binpkg.NewReader(r).At(offset)

	for {
		recOffset := br.Pos()

		tagBytes, err := br.ReadBytes(4)
		if err != nil {
			res.Notes = append(res.Notes, fmt.Sprintf("record preamble truncated at offset %d: %v", recOffset, err))
			return res
		}
		typeCode, err := br.ReadUint16()
		if err != nil {
			res.Notes = append(res.Notes, fmt.Sprintf("record preamble truncated at offset %d: %v", recOffset, err))
			return res
		}
		wordLength, err := br.ReadUint16()
		if err != nil {
			res.Notes = append(res.Notes, fmt.Sprintf("record preamble truncated at offset %d: %v", recOffset, err))
			return res
		}

		tag := trimTag(tagBytes)
		payloadLen := int(wordLength) * WordSize
		if isEndTag(tag) || payloadLen <= 0 {
			return res
		}

		payload, err := br.Peek(payloadLen)
		// Advance past the declared payload even when the read came up
		// short, so one bad record does not derail the cursor.
		br.Skip(int64(payloadLen))
		if err != nil {
			res.Notes = append(res.Notes, fmt.Sprintf("payload of %q at offset %d unreadable: %v", tag, recOffset, err))
			continue
		}

		val := decodeValue(typeCode, payload)
		if val.Kind == KindError {
			res.Notes = append(res.Notes, fmt.Sprintf("parameter %q at offset %d: %s", tag, recOffset, val.Err))
		}
		res.Params[tag] = val
		res.Records = append(res.Records, Record{
			Tag:        tag,
			TypeCode:   typeCode,
			WordLength: wordLength,
			Offset:     recOffset,
			Value:      val,
		})
	}
}

// trimTag strips one trailing NUL byte from a raw 4-byte tag, if present.
func trimTag(b []byte) string {
	if len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return string(b)
}

// isEndTag reports whether a trimmed tag marks the end of a block.
func isEndTag(tag string) bool {
	return len(tag) >= 3 && tag[:3] == "END"
}

// decodeValue interprets a record payload according to its type code.
//
//	0    little-endian int32 in the first 4 payload bytes
//	1    little-endian float64 in the first 8 payload bytes
//	2-4  Latin-1 text, truncated at the first NUL
//
// Any other code yields the KindError sentinel; excess declared payload
// beyond what the type consumes is ignored.
func decodeValue(typeCode uint16, payload []byte) Value {
	switch {
	case typeCode == 0:
		if len(payload) < 4 {
			return errValue("integer payload shorter than 4 bytes")
		}
		v := int32(uint32(payload[0]) | uint32(payload[1])<<8 | uint32(payload[2])<<16 | uint32(payload[3])<<24)
		return Value{Kind: KindInt32, Int: v}
	case typeCode == 1:
		if len(payload) < 8 {
			return errValue("double payload shorter than 8 bytes")
		}
		var bits uint64
		for i := 7; i >= 0; i-- {
			bits = bits<<8 | uint64(payload[i])
		}
		return Value{Kind: KindFloat64, Float: math.Float64frombits(bits)}
	case typeCode >= 2 && typeCode <= 4:
		return Value{Kind: KindText, Text: decodeLatin1(payload)}
	default:
		return errValue(fmt.Sprintf("unsupported type %d", typeCode))
	}
}

// decodeLatin1 converts bytes to text one code point per byte, stopping at
// the first NUL.
func decodeLatin1(b []byte) string {
	runes := make([]rune, 0, len(b))
	for _, c := range b {
		if c == 0 {
			break
		}
		runes = append(runes, rune(c))
	}
	return string(runes)
}
