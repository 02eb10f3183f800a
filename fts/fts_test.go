package fts

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test image construction. Synthetic files carry a real preamble, block
// directory and payloads so the full pipeline runs against them.

type tblock struct {
	primary, secondary uint8
	payload            []byte
}

// record encodes one parameter record with its 8-byte preamble.
func record(tag string, typeCode uint16, payload []byte) []byte {
	var buf bytes.Buffer
	t := make([]byte, 4)
	copy(t, tag)
	buf.Write(t)
	if len(payload)%2 != 0 {
		payload = append(payload, 0)
	}
	binary.Write(&buf, binary.LittleEndian, typeCode)
	binary.Write(&buf, binary.LittleEndian, uint16(len(payload)/2))
	buf.Write(payload)
	return buf.Bytes()
}

func intPayload(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

func floatPayload(v float64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	return b
}

func textPayload(s string) []byte {
	b := append([]byte(s), 0)
	if len(b)%2 != 0 {
		b = append(b, 0)
	}
	return b
}

// headerPayload concatenates parameter records and terminates the block.
func headerPayload(records ...[]byte) []byte {
	var buf bytes.Buffer
	for _, r := range records {
		buf.Write(r)
	}
	buf.Write(record("END", 0, nil))
	return buf.Bytes()
}

// dataPayload encodes float32 values as a bulk data payload.
func dataPayload(values []float32) []byte {
	var buf bytes.Buffer
	for _, v := range values {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

func constValues(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// ftsImage assembles a complete file image: magic, preamble, directory,
// payloads. Directory lengths are derived from the payloads: element counts
// for data blocks, 2-byte words otherwise.
func ftsImage(blocks []tblock) []byte {
	dirOffset := int32(24)
	payloadStart := dirOffset + int32(12*len(blocks))

	var dir, payloads bytes.Buffer
	off := payloadStart
	for _, b := range blocks {
		var length int32
		if b.primary == 7 {
			length = int32(len(b.payload) / 4)
		} else {
			length = int32(len(b.payload) / 2)
		}
		dir.WriteByte(b.primary)
		dir.WriteByte(b.secondary)
		binary.Write(&dir, binary.LittleEndian, uint16(0))
		binary.Write(&dir, binary.LittleEndian, length)
		binary.Write(&dir, binary.LittleEndian, off)
		payloads.Write(b.payload)
		off += int32(len(b.payload))
	}

	var buf bytes.Buffer
	buf.Write([]byte{0x0A, 0x0A, 0xFE, 0xFE})
	binary.Write(&buf, binary.LittleEndian, int32(0))
	binary.Write(&buf, binary.LittleEndian, int32(0))
	binary.Write(&buf, binary.LittleEndian, dirOffset)
	binary.Write(&buf, binary.LittleEndian, int32(0))
	binary.Write(&buf, binary.LittleEndian, int32(len(blocks)))
	buf.Write(dir.Bytes())
	buf.Write(payloads.Bytes())
	return buf.Bytes()
}

func writeFTS(t *testing.T, path string, blocks []tblock) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, ftsImage(blocks), 0o644))
}

// testBlocks builds the standard fixture: acquisition, instrument, sample
// and spectral parameter blocks, a 4-point spectrum, a 1000-point
// interferogram and one placeholder block. DAT appears in two blocks to
// exercise ambiguous lookup.
func testBlocks() []tblock {
	ifg := make([]float32, 1000)
	for i := range ifg {
		ifg[i] = float32(i % 17)
	}
	return []tblock{
		{primary: 0, secondary: 0, payload: []byte{1, 2, 3, 4}},
		{primary: 48, secondary: 0, payload: headerPayload(
			record("RES", 1, floatPayload(0.5)),
			record("NSS", 0, intPayload(42)),
		)},
		{primary: 32, secondary: 0, payload: headerPayload(
			record("GFW", 0, intPayload(1)),
			record("GBW", 0, intPayload(1)),
			record("LWN", 1, floatPayload(15798.0)),
		)},
		{primary: 160, secondary: 0, payload: headerPayload(
			record("DAT", 2, textPayload("2026/08/24")),
		)},
		{primary: 23, secondary: 4, payload: headerPayload(
			record("FXV", 1, floatPayload(4000.0)),
			record("LXV", 1, floatPayload(11000.0)),
			record("DPF", 0, intPayload(1)),
			record("DAT", 2, textPayload("2026/08/23")),
		)},
		{primary: 7, secondary: 4, payload: dataPayload([]float32{1, 2, 3, 4})},
		{primary: 7, secondary: 8, payload: dataPayload(ifg)},
	}
}

func openTestFile(t *testing.T, opts ...Option) *File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.0")
	writeFTS(t, path, testBlocks())
	f, err := Open(path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}
