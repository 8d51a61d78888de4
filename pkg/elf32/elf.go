package elf32

import (
	"debug/elf"
	"unsafe"
)

const EhdrSize = int(unsafe.Sizeof(Ehdr{}))
const ShdrSize = int(unsafe.Sizeof(Shdr{}))
const SymSize = int(unsafe.Sizeof(Sym{}))

// ShOffFieldOffset is the position of e_shoff inside an ELF32 header.
const ShOffFieldOffset = int(unsafe.Offsetof(Ehdr{}.ShOff))

type Ehdr struct {
	Ident     [16]uint8
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint32
	PhOff     uint32
	ShOff     uint32
	Flags     uint32
	EhSize    uint16
	PhEntSize uint16
	PhNum     uint16
	ShEntSize uint16
	ShNum     uint16
	ShStrndx  uint16
}

type Shdr struct {
	Name      uint32
	Type      uint32
	Flags     uint32
	Addr      uint32
	Offset    uint32
	Size      uint32
	Link      uint32
	Info      uint32
	AddrAlign uint32
	EntSize   uint32
}

type Sym struct {
	Name  uint32
	Val   uint32
	Size  uint32
	Info  uint8
	Other uint8
	Shndx uint16
}

func (s *Sym) IsAbs() bool {
	return s.Shndx == uint16(elf.SHN_ABS)
}

func (s *Sym) IsUndef() bool {
	return s.Shndx == uint16(elf.SHN_UNDEF)
}

func (s *Sym) IsDefined() bool {
	return !s.IsUndef()
}

// IsReserved reports whether Shndx is a special index (ABS, COMMON, ...)
// rather than a real section.
func (s *Sym) IsReserved() bool {
	return s.Shndx >= uint16(elf.SHN_LORESERVE)
}

func (s *Sym) Type() elf.SymType {
	return elf.ST_TYPE(s.Info)
}

func (s *Sym) Bind() elf.SymBind {
	return elf.ST_BIND(s.Info)
}
