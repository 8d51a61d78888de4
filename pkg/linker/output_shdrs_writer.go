package linker

import (
	"github.com/hcyang1106/elf-merger/pkg/elf32"
	"github.com/hcyang1106/elf-merger/pkg/utils"
)

type OutputShdrsWriter struct {
	OutputWriter
	Null     elf32.Shdr
	EntSize  uint32
	NumShdrs int
}

func NewOutputShdrsWriter(a *ObjectFile) *OutputShdrsWriter {
	h := a.View.Header()
	o := &OutputShdrsWriter{
		EntSize:  uint32(h.ShEntSize),
		NumShdrs: a.View.NumSections(),
	}
	if o.NumShdrs > 0 {
		o.Null = a.View.Shdrs()[0]
	}
	o.Name = "shdr"
	o.Shdr.Size = uint32(o.NumShdrs) * o.EntSize
	return o
}

func (o *OutputShdrsWriter) CopyBuf(m *merge) error {
	if o.NumShdrs == 0 {
		return nil
	}
	base := m.buf[o.Shdr.Offset:]
	if err := utils.Write[elf32.Shdr](base, m.order, o.Null); err != nil {
		return err
	}
	for _, w := range m.writers {
		if w.GetShndx() > 0 {
			err := utils.Write[elf32.Shdr](base[uint32(w.GetShndx())*o.EntSize:], m.order, *w.GetShdr())
			if err != nil {
				return err
			}
		}
	}
	return nil
}
