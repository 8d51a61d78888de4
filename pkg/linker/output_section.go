package linker

import (
	"debug/elf"

	"github.com/hcyang1106/elf-merger/pkg/elf32"
)

// OutputSection is one section of the first input in the merged object,
// possibly followed by the same-named section of the second input.
type OutputSection struct {
	OutputWriter
	InputSections []*InputSection
}

func NewOutputSection(name string, shdr elf32.Shdr, shndx int) *OutputSection {
	o := &OutputSection{}
	o.Name = name
	o.Shdr = shdr
	o.Shndx = shndx
	return o
}

func (o *OutputSection) isNoBits() bool {
	return elf.SectionType(o.Shdr.Type) == elf.SHT_NOBITS
}

func (o *OutputSection) AddInputSection(isec *InputSection) {
	isec.Offset = o.contentSize()
	o.InputSections = append(o.InputSections, isec)
	if !o.isNoBits() && len(o.InputSections) > 1 {
		o.Shdr.Size = o.contentSize()
	}
}

func (o *OutputSection) contentSize() uint32 {
	size := uint32(0)
	for _, isec := range o.InputSections {
		size += uint32(len(isec.Content))
	}
	return size
}

func (o *OutputSection) FileSize() uint32 {
	if o.isNoBits() {
		return 0
	}
	return o.contentSize()
}

func (o *OutputSection) CopyBuf(m *merge) error {
	if o.isNoBits() {
		return nil
	}
	base := m.buf[o.Shdr.Offset:]
	for _, isec := range o.InputSections {
		isec.WriteTo(base)
	}
	return nil
}
