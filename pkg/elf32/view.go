package elf32

import (
	"debug/elf"
	"encoding/binary"

	"github.com/hcyang1106/elf-merger/pkg/utils"
	"github.com/pkg/errors"
)

// View is a read-only overlay on an ELF32 image. The underlying buffer is
// never written; every accessor bounds-checks against it.
type View struct {
	content  []byte
	order    binary.ByteOrder
	ehdr     Ehdr
	shdrs    []Shdr
	sections []Section
	shStrTab []byte
}

// Load validates the ELF magic and decodes the header and section header
// table of content.
func Load(content []byte) (*View, error) {
	if !CheckMagic(content) {
		return nil, ErrNotAnElfFile
	}
	if len(content) < EhdrSize {
		return nil, errors.Wrapf(ErrMalformed, "file is smaller than Ehdr size (%d < %d)", len(content), EhdrSize)
	}

	v := &View{
		content: content,
		order:   byteOrder(content[elf.EI_DATA]),
	}
	if err := utils.Read[Ehdr](content, v.order, &v.ehdr); err != nil {
		return nil, errors.Wrap(ErrMalformed, err.Error())
	}
	if int(v.ehdr.EhSize) > len(content) {
		return nil, errors.Wrapf(ErrMalformed, "header size %d exceeds file length %d", v.ehdr.EhSize, len(content))
	}
	if err := v.parseSectionHeaders(); err != nil {
		return nil, err
	}
	return v, nil
}

func byteOrder(data uint8) binary.ByteOrder {
	if elf.Data(data) == elf.ELFDATA2MSB {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (v *View) readShdr(idx uint64) (Shdr, error) {
	shdr := Shdr{}
	start := uint64(v.ehdr.ShOff) + idx*uint64(v.ehdr.ShEntSize)
	if start+uint64(ShdrSize) > uint64(len(v.content)) {
		return shdr, errors.Wrapf(ErrMalformed, "section header %d at 0x%x exceeds file length", idx, start)
	}
	err := utils.Read[Shdr](v.content[start:], v.order, &shdr)
	return shdr, err
}

func (v *View) parseSectionHeaders() error {
	if v.ehdr.ShOff == 0 {
		return nil
	}
	if int(v.ehdr.ShEntSize) < ShdrSize {
		return errors.Wrapf(ErrMalformed, "section header entry size %d is smaller than %d", v.ehdr.ShEntSize, ShdrSize)
	}

	first, err := v.readShdr(0)
	if err != nil {
		return err
	}
	numSecs := uint64(v.ehdr.ShNum)
	if numSecs == 0 {
		numSecs = uint64(first.Size)
	}
	end := uint64(v.ehdr.ShOff) + numSecs*uint64(v.ehdr.ShEntSize)
	if end > uint64(len(v.content)) {
		return errors.Wrapf(ErrMalformed, "section header table [0x%x, 0x%x) exceeds file length %d",
			v.ehdr.ShOff, end, len(v.content))
	}

	v.shdrs = make([]Shdr, 0, numSecs)
	for i := uint64(0); i < numSecs; i++ {
		shdr, err := v.readShdr(i)
		if err != nil {
			return err
		}
		v.shdrs = append(v.shdrs, shdr)
	}

	shStrndx := uint32(v.ehdr.ShStrndx)
	if shStrndx == uint32(elf.SHN_XINDEX) {
		shStrndx = first.Link
	}
	if shStrndx != uint32(elf.SHN_UNDEF) {
		if uint64(shStrndx) >= numSecs {
			return errors.Wrapf(ErrMalformed, "section name table index %d out of range", shStrndx)
		}
		v.shStrTab, err = v.bytesFromShdr(&v.shdrs[shStrndx])
		if err != nil {
			return err
		}
	}

	v.sections = make([]Section, len(v.shdrs))
	for i, shdr := range v.shdrs {
		v.sections[i] = Section{
			Index:     i,
			Name:      utils.CString(v.shStrTab, shdr.Name),
			Type:      SectionType(shdr.Type),
			Flags:     shdr.Flags,
			Addr:      shdr.Addr,
			Offset:    shdr.Offset,
			Size:      shdr.Size,
			Link:      shdr.Link,
			Info:      shdr.Info,
			AddrAlign: shdr.AddrAlign,
			EntSize:   shdr.EntSize,
		}
	}
	return nil
}

func (v *View) bytesFromShdr(s *Shdr) ([]byte, error) {
	if elf.SectionType(s.Type) == elf.SHT_NOBITS || elf.SectionType(s.Type) == elf.SHT_NULL {
		return []byte{}, nil
	}
	end := uint64(s.Offset) + uint64(s.Size)
	if end > uint64(len(v.content)) {
		return nil, errors.Wrapf(ErrMalformed, "section bytes [0x%x, 0x%x) exceed file length %d",
			s.Offset, end, len(v.content))
	}
	return v.content[s.Offset:end], nil
}

func (v *View) mustIndex(idx int) {
	utils.Assert(idx >= 0 && idx < len(v.shdrs),
		"section index %d out of range [0, %d)", idx, len(v.shdrs))
}

func (v *View) Header() Ehdr {
	return v.ehdr
}

func (v *View) ByteOrder() binary.ByteOrder {
	return v.order
}

func (v *View) Len() int {
	return len(v.content)
}

// HeaderBytes returns the raw e_ehsize bytes of the ELF header.
func (v *View) HeaderBytes() []byte {
	size := int(v.ehdr.EhSize)
	if size < EhdrSize {
		size = EhdrSize
	}
	return v.content[:size]
}

func (v *View) NumSections() int {
	return len(v.shdrs)
}

func (v *View) Sections() []Section {
	return append([]Section(nil), v.sections...)
}

func (v *View) Section(idx int) Section {
	v.mustIndex(idx)
	return v.sections[idx]
}

func (v *View) Shdrs() []Shdr {
	return append([]Shdr(nil), v.shdrs...)
}

func (v *View) SectionName(idx int) string {
	v.mustIndex(idx)
	return v.sections[idx].Name
}

// SectionBytes returns [offset, offset+size) of section idx. Sections
// without file contents (NULL, NOBITS) yield an empty slice.
func (v *View) SectionBytes(idx int) ([]byte, error) {
	v.mustIndex(idx)
	return v.bytesFromShdr(&v.shdrs[idx])
}

// ShdrFileOffset is where the header of section idx lives in the file.
func (v *View) ShdrFileOffset(idx int) uint32 {
	v.mustIndex(idx)
	return v.ehdr.ShOff + uint32(idx)*uint32(v.ehdr.ShEntSize)
}

// FindSection returns the first section called name, scanning from index 0.
func (v *View) FindSection(name string) (int, bool) {
	for i, s := range v.sections {
		if s.Name == name {
			return i, true
		}
	}
	return -1, false
}
