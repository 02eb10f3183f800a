package structure

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bytesReaderAt wraps a byte slice to implement io.ReaderAt.
type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, nil
	}
	n := copy(p, b[off:])
	return n, nil
}

type dirRecord struct {
	primary, secondary uint8
	length, offset     int32
}

// buildImage constructs a minimal FTS image: magic, preamble, directory.
func buildImage(records []dirRecord) bytesReaderAt {
	var buf bytes.Buffer
	buf.Write(Magic)
	binary.Write(&buf, binary.LittleEndian, int32(0))
	binary.Write(&buf, binary.LittleEndian, int32(0))
	binary.Write(&buf, binary.LittleEndian, int32(24)) // directory right after preamble
	binary.Write(&buf, binary.LittleEndian, int32(0))
	binary.Write(&buf, binary.LittleEndian, int32(len(records)))
	for _, r := range records {
		buf.WriteByte(r.primary)
		buf.WriteByte(r.secondary)
		binary.Write(&buf, binary.LittleEndian, uint16(0))
		binary.Write(&buf, binary.LittleEndian, r.length)
		binary.Write(&buf, binary.LittleEndian, r.offset)
	}
	return bytesReaderAt(buf.Bytes())
}

func TestCheckMagic(t *testing.T) {
	require.NoError(t, CheckMagic(buildImage(nil)))
}

func TestCheckMagicRejectsOtherPrefixes(t *testing.T) {
	for _, prefix := range [][]byte{
		{0x00, 0x00, 0x00, 0x00},
		{0x0A, 0x0A, 0xFE, 0xFF},
		{0xFE, 0xFE, 0x0A, 0x0A},
		{0x89, 'H', 'D', 'F'},
	} {
		data := make(bytesReaderAt, 64)
		copy(data, prefix)
		assert.ErrorIs(t, CheckMagic(data), ErrBadMagic, "prefix % x", prefix)
	}
}

func TestCheckMagicShortFile(t *testing.T) {
	assert.ErrorIs(t, CheckMagic(bytesReaderAt{0x0A, 0x0A}), ErrBadMagic)
}

func TestScanDirectory(t *testing.T) {
	data := buildImage([]dirRecord{
		{primary: 160, secondary: 0, length: 40, offset: 100},
		{primary: 23, secondary: 4, length: 52, offset: 180},
		{primary: 7, secondary: 8, length: 1000, offset: 284},
	})

	dir, err := Scan(data)
	require.NoError(t, err)
	require.Len(t, dir.Entries, 3)
	assert.Empty(t, dir.Collisions)

	want := []struct {
		name           string
		length, offset int32
	}{
		{"Sample Parameters", 40, 100},
		{"Data Parameters SpSm", 52, 180},
		{"Data Block IgSm", 1000, 284},
	}
	require.Equal(t, []string{want[0].name, want[1].name, want[2].name}, dir.Order)
	for _, w := range want {
		e, ok := dir.Block(w.name)
		require.True(t, ok, w.name)
		assert.Equal(t, w.length, e.Length)
		assert.Equal(t, w.offset, e.Offset)
	}
}

func TestScanRecordsCollisions(t *testing.T) {
	data := buildImage([]dirRecord{
		{primary: 48, secondary: 0, length: 10, offset: 100},
		{primary: 48, secondary: 0, length: 20, offset: 200},
	})

	dir, err := Scan(data)
	require.NoError(t, err)
	require.Len(t, dir.Collisions, 1)
	assert.Equal(t, "Acquisition Parameters", dir.Collisions[0].Name)
	assert.Equal(t, int32(100), dir.Collisions[0].Previous.Offset)

	// Last write wins in the catalog.
	e, ok := dir.Block("Acquisition Parameters")
	require.True(t, ok)
	assert.Equal(t, int32(200), e.Offset)
}

func TestScanTruncatedPreamble(t *testing.T) {
	data := make(bytesReaderAt, 10)
	copy(data, Magic)
	_, err := Scan(data)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestScanTruncatedDirectory(t *testing.T) {
	full := buildImage([]dirRecord{
		{primary: 160, secondary: 0, length: 40, offset: 100},
		{primary: 23, secondary: 4, length: 52, offset: 180},
	})
	// Cut the second directory record in half.
	_, err := Scan(full[:len(full)-4])
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestResolveNameKnownBlocks(t *testing.T) {
	cases := []struct {
		primary, secondary uint8
		want               string
	}{
		{160, 0, "Sample Parameters"},
		{23, 4, "Data Parameters SpSm"},
		{23, 132, "Data Parameters ScSm"},
		{48, 0, "Acquisition Parameters"},
		{96, 0, "Optic Parameters"},
		{64, 0, "FT Parameters"},
		{32, 0, "Instrument Parameters"},
		{7, 8, "Data Block IgSm"},
		{7, 20, "Data Block TrSm"},
		{7, 12, "Data Block PhSm"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ResolveName(c.primary, c.secondary, 64), "codes %d/%d", c.primary, c.secondary)
	}
}

func TestResolveNamePlaceholders(t *testing.T) {
	assert.Equal(t, "something len  12", ResolveName(0, 0, 12))
	assert.Equal(t, "[unknown block 99] len 640", ResolveName(99, 0, 640))
}

// The two suffix lookup paths must stay independently testable: the decoded
// numeric table is consulted first, the raw byte table second.
func TestSecondarySuffixPaths(t *testing.T) {
	s, ok := SuffixByCode(132)
	require.True(t, ok)
	assert.Equal(t, " ScSm", s)

	s, ok = SuffixByRawByte(0x84)
	require.True(t, ok)
	assert.Equal(t, " SpSm/2.Chn.", s)

	s, ok = SuffixByRawByte(0x88)
	require.True(t, ok)
	assert.Equal(t, " IgSm/2.Chn.", s)

	_, ok = SuffixByCode(136)
	assert.False(t, ok, "136 is only in the raw byte table")

	// 0x84 matches both tables; the numeric path wins in ResolveName.
	assert.Equal(t, "Data Block ScSm", ResolveName(7, 0x84, 64))
	// 0x88 only matches the raw byte path.
	assert.Equal(t, "Data Block IgSm/2.Chn.", ResolveName(7, 0x88, 64))
}

func TestIsDataBlockAndPlaceholder(t *testing.T) {
	assert.True(t, IsDataBlock("Data Block SpSm"))
	assert.False(t, IsDataBlock("Data Parameters SpSm"))
	assert.True(t, IsPlaceholder("something len  12"))
	assert.True(t, IsPlaceholder("[unknown block 99] len 640"))
	assert.False(t, IsPlaceholder("Acquisition Parameters"))
}
