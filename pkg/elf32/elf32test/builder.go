// Package elf32test emits small ELF32 relocatable objects for tests.
package elf32test

import (
	"debug/elf"
	"encoding/binary"

	"github.com/hcyang1106/elf-merger/pkg/elf32"
	"github.com/hcyang1106/elf-merger/pkg/utils"
)

const (
	SectionAbs    = "*ABS*"
	SectionCommon = "*COM*"
)

type Section struct {
	Name  string
	Type  elf.SectionType // PROGBITS when zero
	Flags elf.SectionFlag
	Data  []byte
	Size  uint32 // NOBITS only
}

type Symbol struct {
	Name    string
	Value   uint32
	Size    uint32
	Section string // "" means undefined
	Type    elf.SymType
	Bind    elf.SymBind
}

type Object struct {
	Order    binary.ByteOrder // little endian when nil
	Machine  elf.Machine      // EM_386 when zero
	Type     elf.Type         // ET_REL when zero
	File     string           // STT_FILE symbol at index 1 when set
	Sections []Section
	Symbols  []Symbol
	NoSymtab bool
}

type strTab struct {
	buf []byte
}

func newStrTab() *strTab {
	return &strTab{buf: []byte{0}}
}

func (s *strTab) add(name string) uint32 {
	if name == "" {
		return 0
	}
	off := uint32(len(s.buf))
	s.buf = append(s.buf, name...)
	s.buf = append(s.buf, 0)
	return off
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Bytes lays out the object as: ELF header, section contents in order,
// .symtab, .strtab, .shstrtab, then the section header table.
func (o Object) Bytes() []byte {
	order := o.Order
	if order == nil {
		order = binary.LittleEndian
	}

	sections := []Section{{Type: elf.SHT_NULL}}
	sections = append(sections, o.Sections...)
	symtabIdx, strtabIdx := -1, -1
	if !o.NoSymtab {
		symtabIdx = len(sections)
		strtabIdx = symtabIdx + 1
		sections = append(sections,
			Section{Name: ".symtab", Type: elf.SHT_SYMTAB},
			Section{Name: ".strtab", Type: elf.SHT_STRTAB})
	}
	shStrIdx := len(sections)
	sections = append(sections, Section{Name: ".shstrtab", Type: elf.SHT_STRTAB})

	sectionIndex := func(name string) uint16 {
		switch name {
		case "":
			return uint16(elf.SHN_UNDEF)
		case SectionAbs:
			return uint16(elf.SHN_ABS)
		case SectionCommon:
			return uint16(elf.SHN_COMMON)
		}
		for i, s := range sections {
			if i > 0 && s.Name == name {
				return uint16(i)
			}
		}
		panic("unknown section " + name)
	}

	var firstGlobal uint32
	if symtabIdx >= 0 {
		strs := newStrTab()
		syms := []elf32.Sym{{}}
		if o.File != "" {
			syms = append(syms, elf32.Sym{
				Name:  strs.add(o.File),
				Info:  elf.ST_INFO(elf.STB_LOCAL, elf.STT_FILE),
				Shndx: uint16(elf.SHN_ABS),
			})
		}
		locals := true
		firstGlobal = uint32(len(syms))
		for _, s := range o.Symbols {
			syms = append(syms, elf32.Sym{
				Name:  strs.add(s.Name),
				Val:   s.Value,
				Size:  s.Size,
				Info:  elf.ST_INFO(s.Bind, s.Type),
				Shndx: sectionIndex(s.Section),
			})
			if locals && s.Bind == elf.STB_LOCAL {
				firstGlobal = uint32(len(syms))
			} else {
				locals = false
			}
		}
		data, err := utils.WriteSlice[elf32.Sym](syms, order, elf32.SymSize)
		must(err)
		sections[symtabIdx].Data = data
		sections[strtabIdx].Data = strs.buf
	}

	shStrs := newStrTab()
	shdrs := make([]elf32.Shdr, len(sections))
	nameOffs := make([]uint32, len(sections))
	for i, s := range sections {
		if i > 0 {
			nameOffs[i] = shStrs.add(s.Name)
		}
	}
	sections[shStrIdx].Data = shStrs.buf

	content := make([]byte, elf32.EhdrSize)
	for i, s := range sections {
		typ := s.Type
		if typ == 0 && i > 0 {
			typ = elf.SHT_PROGBITS
		}
		shdr := elf32.Shdr{
			Name:      nameOffs[i],
			Type:      uint32(typ),
			Flags:     uint32(s.Flags),
			AddrAlign: 1,
		}
		if i > 0 {
			shdr.Offset = uint32(len(content))
		}
		switch {
		case i == 0:
			shdr.AddrAlign = 0
		case typ == elf.SHT_NOBITS:
			shdr.Size = s.Size
		default:
			shdr.Size = uint32(len(s.Data))
			content = append(content, s.Data...)
		}
		if i == symtabIdx {
			shdr.Link = uint32(strtabIdx)
			shdr.Info = firstGlobal
			shdr.EntSize = uint32(elf32.SymSize)
			shdr.AddrAlign = 4
		}
		shdrs[i] = shdr
	}

	shOff := uint32(len(content))
	table, err := utils.WriteSlice[elf32.Shdr](shdrs, order, elf32.ShdrSize)
	must(err)
	content = append(content, table...)

	machine := o.Machine
	if machine == 0 {
		machine = elf.EM_386
	}
	typ := o.Type
	if typ == 0 {
		typ = elf.ET_REL
	}
	ehdr := elf32.Ehdr{
		Type:      uint16(typ),
		Machine:   uint16(machine),
		Version:   uint32(elf.EV_CURRENT),
		ShOff:     shOff,
		EhSize:    uint16(elf32.EhdrSize),
		ShEntSize: uint16(elf32.ShdrSize),
		ShNum:     uint16(len(shdrs)),
		ShStrndx:  uint16(shStrIdx),
	}
	elf32.WriteMagic(ehdr.Ident[:])
	ehdr.Ident[elf.EI_CLASS] = uint8(elf.ELFCLASS32)
	ehdr.Ident[elf.EI_DATA] = uint8(elf.ELFDATA2LSB)
	if order == binary.BigEndian {
		ehdr.Ident[elf.EI_DATA] = uint8(elf.ELFDATA2MSB)
	}
	ehdr.Ident[elf.EI_VERSION] = uint8(elf.EV_CURRENT)
	must(utils.Write[elf32.Ehdr](content, order, ehdr))

	return content
}
