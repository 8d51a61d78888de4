package linker

import (
	"github.com/hcyang1106/elf-merger/pkg/elf32"
	"github.com/hcyang1106/elf-merger/pkg/utils"
)

// OutputSymtabWriter is the first input's symbol table with undefined
// entries rewritten against the second input.
type OutputSymtabWriter struct {
	OutputSection
	Syms   []elf32.Sym
	StrTab []byte
}

func NewOutputSymtabWriter(a *ObjectFile, shndx int) (*OutputSymtabWriter, error) {
	syms, err := a.View.Symbols(shndx)
	if err != nil {
		return nil, err
	}
	strTab, err := a.View.StringTable(shndx)
	if err != nil {
		return nil, err
	}
	isec, err := NewInputSection(a, shndx)
	if err != nil {
		return nil, err
	}

	o := &OutputSymtabWriter{
		OutputSection: *NewOutputSection(a.View.SectionName(shndx), a.View.Shdrs()[shndx], shndx),
		Syms:          syms,
		StrTab:        strTab,
	}
	o.AddInputSection(isec)
	return o, nil
}

func (o *OutputSymtabWriter) SymbolName(i int) string {
	return elf32.SymbolName(o.StrTab, &o.Syms[i])
}

func (o *OutputSymtabWriter) CopyBuf(m *merge) error {
	base := m.buf[o.Shdr.Offset : o.Shdr.Offset+o.FileSize()]
	copy(base, o.InputSections[0].Content)
	for i, sym := range o.Syms {
		if err := utils.Write[elf32.Sym](base[i*elf32.SymSize:], m.order, sym); err != nil {
			return err
		}
	}
	return nil
}
