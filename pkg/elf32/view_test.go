package elf32_test

import (
	"debug/elf"
	"encoding/binary"
	"testing"

	"github.com/hcyang1106/elf-merger/pkg/elf32"
	"github.com/hcyang1106/elf-merger/pkg/elf32/elf32test"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleObject() elf32test.Object {
	return elf32test.Object{
		File: "sample.c",
		Sections: []elf32test.Section{
			{Name: ".text", Flags: elf.SHF_ALLOC | elf.SHF_EXECINSTR, Data: []byte{0x55, 0x89, 0xe5, 0xc3}},
			{Name: ".data", Flags: elf.SHF_ALLOC | elf.SHF_WRITE, Data: []byte{1, 0, 0, 0}},
			{Name: ".bss", Type: elf.SHT_NOBITS, Flags: elf.SHF_ALLOC | elf.SHF_WRITE, Size: 64},
		},
		Symbols: []elf32test.Symbol{
			{Name: "counter", Value: 0, Size: 4, Section: ".data", Type: elf.STT_OBJECT, Bind: elf.STB_GLOBAL},
			{Name: "main", Value: 0, Size: 4, Section: ".text", Type: elf.STT_FUNC, Bind: elf.STB_GLOBAL},
			{Name: "printf", Bind: elf.STB_GLOBAL},
		},
	}
}

func TestLoadHeader(t *testing.T) {
	v, err := elf32.Load(sampleObject().Bytes())
	require.NoError(t, err)

	h := v.Header()
	assert.Equal(t, uint16(elf.ET_REL), h.Type)
	assert.Equal(t, uint16(elf.EM_386), h.Machine)
	assert.Equal(t, uint16(elf32.EhdrSize), h.EhSize)
	assert.Equal(t, uint16(elf32.ShdrSize), h.ShEntSize)
	assert.Equal(t, uint16(7), h.ShNum)
	assert.Equal(t, elf32.FileTypeObject, v.FileType())
	assert.Equal(t, binary.LittleEndian, v.ByteOrder())
}

func TestRecordLayout(t *testing.T) {
	assert.Equal(t, 52, elf32.EhdrSize)
	assert.Equal(t, 40, elf32.ShdrSize)
	assert.Equal(t, 16, elf32.SymSize)
	assert.Equal(t, 0x20, elf32.ShOffFieldOffset)
}

func TestLoadSections(t *testing.T) {
	v, err := elf32.Load(sampleObject().Bytes())
	require.NoError(t, err)

	names := []string{}
	for _, s := range v.Sections() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"", ".text", ".data", ".bss", ".symtab", ".strtab", ".shstrtab"}, names)

	assert.Equal(t, "NULL", v.Section(0).Type.String())
	assert.Equal(t, "PROGBITS", v.Section(1).Type.String())
	assert.Equal(t, "NOBITS", v.Section(3).Type.String())
	assert.Equal(t, "SYMTAB", v.Section(4).Type.String())
	assert.Equal(t, "STRTAB", v.Section(5).Type.String())
	assert.Equal(t, "UNKNOWN", elf32.SectionType(0x6ffffff6).String())

	text, err := v.SectionBytes(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x55, 0x89, 0xe5, 0xc3}, text)

	bss, err := v.SectionBytes(3)
	require.NoError(t, err)
	assert.Empty(t, bss)
	assert.Equal(t, uint32(64), v.Section(3).Size)

	idx, ok := v.FindSection(".data")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
	_, ok = v.FindSection(".rodata")
	assert.False(t, ok)

	h := v.Header()
	assert.Equal(t, h.ShOff+2*uint32(h.ShEntSize), v.ShdrFileOffset(2))
}

func TestLoadBigEndian(t *testing.T) {
	obj := sampleObject()
	obj.Order = binary.BigEndian
	v, err := elf32.Load(obj.Bytes())
	require.NoError(t, err)
	assert.Equal(t, binary.BigEndian, v.ByteOrder())
	assert.Equal(t, ".text", v.SectionName(1))

	si, err := elf32.NewSymbolIndex(v)
	require.NoError(t, err)
	_, sym := si.Lookup("main")
	require.NotNil(t, sym)
	assert.Equal(t, uint32(4), sym.Size)
}

func TestLoadRejectsCorruptMagic(t *testing.T) {
	content := sampleObject().Bytes()
	for i := 0; i < 4; i++ {
		corrupt := append([]byte(nil), content...)
		corrupt[i] ^= 0xff
		_, err := elf32.Load(corrupt)
		assert.True(t, errors.Is(err, elf32.ErrNotAnElfFile), "byte %d", i)
	}

	_, err := elf32.Load([]byte("\x7fEL"))
	assert.True(t, errors.Is(err, elf32.ErrNotAnElfFile))
}

func TestLoadRejectsTruncatedInput(t *testing.T) {
	content := sampleObject().Bytes()

	_, err := elf32.Load(content[:20])
	assert.True(t, errors.Is(err, elf32.ErrMalformed))

	// drop the tail of the section header table
	_, err = elf32.Load(content[:len(content)-8])
	assert.True(t, errors.Is(err, elf32.ErrMalformed))
}

func TestSectionIndexOutOfRangePanics(t *testing.T) {
	v, err := elf32.Load(sampleObject().Bytes())
	require.NoError(t, err)
	assert.Panics(t, func() { v.SectionName(v.NumSections()) })
	assert.Panics(t, func() { _, _ = v.SectionBytes(-1) })
}
