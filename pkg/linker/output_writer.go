package linker

import "github.com/hcyang1106/elf-merger/pkg/elf32"

type iOutputWriter interface {
	GetShdr() *elf32.Shdr
	GetShndx() int // 0 for ehdr and shdr table
	FileSize() uint32
	CopyBuf(m *merge) error
}

type OutputWriter struct {
	Name  string
	Shdr  elf32.Shdr
	Shndx int
}

func (o *OutputWriter) GetShdr() *elf32.Shdr {
	return &o.Shdr
}

func (o *OutputWriter) GetShndx() int {
	return o.Shndx
}

func (o *OutputWriter) FileSize() uint32 {
	return o.Shdr.Size
}

func (o *OutputWriter) CopyBuf(m *merge) error {
	return nil
}
