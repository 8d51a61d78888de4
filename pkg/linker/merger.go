package linker

import (
	"encoding/binary"

	"github.com/hcyang1106/elf-merger/pkg/elf32"
	"github.com/hcyang1106/elf-merger/pkg/log"
	"github.com/hcyang1106/elf-merger/pkg/utils"
	"github.com/pkg/errors"
)

// merge is the state of one in-flight merge.
type merge struct {
	ctx   *Context
	a, b  *ObjectFile
	order binary.ByteOrder

	ehdrWriter  *OutputEhdrWriter
	shdrsWriter *OutputShdrsWriter
	symtab      *OutputSymtabWriter
	writers     []iOutputWriter

	buf      []byte
	resolved []Symbol
}

type pass struct {
	name string
	run  func(m *merge) error
}

var passes = []pass{
	{"create output writers", CreateOutputWriters},
	{"resolve symbols", ResolveSymbols},
	{"assign offsets", AssignOffsets},
	{"copy buffers", CopyBufs},
	{"patch e_shoff", PatchShOff},
}

// Merge combines a and b into one relocatable object laid out after a's
// section order. v must be the Mergeable verdict CheckMergeable returned
// for exactly this pair.
func Merge(ctx *Context, a, b *ObjectFile, v Verdict) (*MergedObject, error) {
	if !v.IsMergeable() || !v.For(a, b) {
		return nil, errors.Wrapf(ErrPreconditionNotMet, "verdict %s", v)
	}

	m := &merge{
		ctx:   ctx,
		a:     a,
		b:     b,
		order: a.View.ByteOrder(),
	}
	for _, p := range passes {
		log.Debugf("merge pass: %s", p.name)
		if err := p.run(m); err != nil {
			return nil, errors.Wrapf(err, "merging %s and %s: %s", a.Name(), b.Name(), p.name)
		}
	}
	return m.result()
}

func (m *merge) result() (*MergedObject, error) {
	o := &MergedObject{
		Content:  m.buf,
		Resolved: m.resolved,
	}
	if err := utils.Read[elf32.Ehdr](m.buf, m.order, &o.Ehdr); err != nil {
		return nil, err
	}
	o.Shdrs = append(o.Shdrs, m.shdrsWriter.Null)
	for _, w := range m.writers {
		if w.GetShndx() > 0 {
			o.Shdrs = append(o.Shdrs, *w.GetShdr())
		}
	}
	return o, nil
}
