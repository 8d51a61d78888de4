package elf32

import (
	"debug/elf"

	"github.com/hcyang1106/elf-merger/pkg/utils"
	"github.com/pkg/errors"
)

// LocateSymtab returns the index of the first SHT_SYMTAB section, or of the
// first SHT_DYNSYM section when dynamic is set.
func (v *View) LocateSymtab(dynamic bool) (int, error) {
	want := elf.SHT_SYMTAB
	if dynamic {
		want = elf.SHT_DYNSYM
	}
	for i, shdr := range v.shdrs {
		if elf.SectionType(shdr.Type) == want {
			return i, nil
		}
	}
	return -1, ErrNoSymbolTable
}

// Symbols decodes the symbol table at idx. The entry count is the section
// size divided by SymSize.
func (v *View) Symbols(idx int) ([]Sym, error) {
	bs, err := v.SectionBytes(idx)
	if err != nil {
		return nil, err
	}
	nums := len(bs) / SymSize
	return utils.ReadSlice[Sym](bs[:nums*SymSize], v.order, SymSize)
}

// StringTable returns the section referenced by the sh_link of the symbol
// table at idx.
func (v *View) StringTable(idx int) ([]byte, error) {
	v.mustIndex(idx)
	link := v.shdrs[idx].Link
	if int(link) >= len(v.shdrs) {
		return nil, errors.Wrapf(ErrMalformed, "string table index %d of section %d out of range", link, idx)
	}
	return v.SectionBytes(int(link))
}

func SymbolName(strTab []byte, sym *Sym) string {
	return utils.CString(strTab, sym.Name)
}

// SymbolIndex is a decoded symbol table together with its string table.
type SymbolIndex struct {
	View      *View
	SymtabIdx int
	Syms      []Sym
	StrTab    []byte
}

func NewSymbolIndex(v *View) (*SymbolIndex, error) {
	idx, err := v.LocateSymtab(false)
	if err != nil {
		return nil, err
	}
	syms, err := v.Symbols(idx)
	if err != nil {
		return nil, err
	}
	strTab, err := v.StringTable(idx)
	if err != nil {
		return nil, err
	}
	return &SymbolIndex{
		View:      v,
		SymtabIdx: idx,
		Syms:      syms,
		StrTab:    strTab,
	}, nil
}

func (s *SymbolIndex) Name(i int) string {
	return SymbolName(s.StrTab, &s.Syms[i])
}

// Lookup returns the first symbol called name, skipping the null entry.
// Names are not assumed unique.
func (s *SymbolIndex) Lookup(name string) (int, *Sym) {
	for i := 1; i < len(s.Syms); i++ {
		if s.Name(i) == name {
			return i, &s.Syms[i]
		}
	}
	return -1, nil
}

// SectionName resolves the defining section of sym, with ABS, COMMON and
// UND for the reserved indices.
func (s *SymbolIndex) SectionName(sym *Sym) string {
	switch {
	case sym.IsUndef():
		return "UND"
	case sym.IsAbs():
		return "ABS"
	case sym.Shndx == uint16(elf.SHN_COMMON):
		return "COMMON"
	case sym.IsReserved() || int(sym.Shndx) >= s.View.NumSections():
		return "UNKNOWN"
	}
	return s.View.SectionName(int(sym.Shndx))
}
