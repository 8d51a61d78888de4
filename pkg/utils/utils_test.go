package utils

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	A uint16
	B uint32
}

func TestReadWriteByteOrder(t *testing.T) {
	buf := make([]byte, 6)
	require.NoError(t, Write[pair](buf, binary.BigEndian, pair{A: 0x0102, B: 0x03040506}))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, buf)

	var p pair
	require.NoError(t, Read[pair](buf, binary.LittleEndian, &p))
	assert.Equal(t, uint16(0x0201), p.A)
	assert.Equal(t, uint32(0x06050403), p.B)
}

func TestReadShortBuffer(t *testing.T) {
	var p pair
	assert.Error(t, Read[pair]([]byte{1, 2, 3}, binary.LittleEndian, &p))
	assert.Error(t, Write[pair](make([]byte, 5), binary.LittleEndian, pair{}))
}

func TestReadSlice(t *testing.T) {
	vals, err := ReadSlice[uint32]([]byte{1, 0, 0, 0, 2, 0, 0, 0}, binary.LittleEndian, 4)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, vals)

	_, err = ReadSlice[uint32]([]byte{1, 0, 0}, binary.LittleEndian, 4)
	assert.Error(t, err)
}

func TestWriteSlicePadsEntries(t *testing.T) {
	buf, err := WriteSlice[uint16]([]uint16{0x0a0b, 0x0c0d}, binary.LittleEndian, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0b, 0x0a, 0, 0, 0x0d, 0x0c, 0, 0}, buf)
}

func TestCString(t *testing.T) {
	table := []byte("\x00.text\x00main")
	assert.Equal(t, "", CString(table, 0))
	assert.Equal(t, ".text", CString(table, 1))
	assert.Equal(t, "ext", CString(table, 3))
	assert.Equal(t, "main", CString(table, 7))
	assert.Equal(t, "", CString(table, 100))
}

func TestAssertPanics(t *testing.T) {
	assert.Panics(t, func() { Assert(false, "index %d", 3) })
	assert.NotPanics(t, func() { Assert(true, "fine") })
}
