package linker

import (
	"github.com/hcyang1106/elf-merger/pkg/elf32"
	"github.com/hcyang1106/elf-merger/pkg/log"
	"github.com/hcyang1106/elf-merger/pkg/utils"
	"github.com/pkg/errors"
)

// sections whose contents from both inputs are concatenated
var concatenatedSections = map[string]bool{
	".text":   true,
	".data":   true,
	".rodata": true,
}

const symtabSectionName = ".symtab"

// CreateOutputWriters lays out ehdr, every non-null section of the first
// input in order, then the section header table.
func CreateOutputWriters(m *merge) error {
	if ma, mb := m.a.View.Header().Machine, m.b.View.Header().Machine; ma != mb {
		log.Warnf("machine types differ: %s is %d, %s is %d", m.a.Name(), ma, m.b.Name(), mb)
	}

	m.ehdrWriter = NewOutputEhdrWriter(m.a)
	m.writers = append(m.writers, m.ehdrWriter)

	shdrs := m.a.View.Shdrs()
	for i := 1; i < len(shdrs); i++ {
		name := m.a.View.SectionName(i)

		if name == symtabSectionName {
			symtab, err := NewOutputSymtabWriter(m.a, i)
			if err != nil {
				return err
			}
			m.symtab = symtab
			m.writers = append(m.writers, symtab)
			continue
		}

		osec := NewOutputSection(name, shdrs[i], i)
		isec, err := NewInputSection(m.a, i)
		if err != nil {
			return err
		}
		osec.AddInputSection(isec)

		if concatenatedSections[name] {
			if j, ok := m.b.View.FindSection(name); ok {
				other, err := NewInputSection(m.b, j)
				if err != nil {
					return err
				}
				osec.AddInputSection(other)
				log.Debugf("%s: %d bytes from %s + %d bytes from %s",
					name, len(isec.Content), m.a.Name(), len(other.Content), m.b.Name())
			}
		}
		m.writers = append(m.writers, osec)
	}

	m.shdrsWriter = NewOutputShdrsWriter(m.a)
	m.writers = append(m.writers, m.shdrsWriter)
	return nil
}

// ResolveSymbols rewrites every undefined entry of the first input's
// symbol table with the value and section of the first same-named symbol
// of the second input. The second input's section is translated by name
// into the first input's section index.
func ResolveSymbols(m *merge) error {
	if m.symtab == nil {
		log.Debugf("%s has no %s section, symbols left as is", m.a.Name(), symtabSectionName)
		return nil
	}
	if m.b.Symtab == nil {
		return errors.Wrapf(ErrResolverInvariantViolated, "%s has no symbol table", m.b.Name())
	}

	start := rewriteScanStart
	if start < m.ctx.resolverScanStart() && len(m.symtab.Syms) > start && m.symtab.Syms[start].IsUndef() {
		log.Debugf("rewriting symbol %d (%s), which the mergeability check skipped",
			start, m.symtab.SymbolName(start))
	}

	for i := start; i < len(m.symtab.Syms); i++ {
		sym := &m.symtab.Syms[i]
		if !sym.IsUndef() {
			continue
		}
		name := m.symtab.SymbolName(i)
		if name == "" {
			continue
		}

		_, def := m.b.Symtab.Lookup(name)
		if def == nil {
			return errors.Wrapf(ErrResolverInvariantViolated, "symbol %s not found in %s", name, m.b.Name())
		}

		shndx, section, err := m.translateShndx(def)
		if err != nil {
			return errors.Wrapf(err, "symbol %s", name)
		}
		sym.Val = def.Val
		sym.Shndx = shndx
		resolved := Symbol{Name: name, SymIdx: i, Value: sym.Val, Shndx: shndx, Section: section}
		m.resolved = append(m.resolved, resolved)
		log.Debugf("resolved %s", resolved)
	}
	return nil
}

// translateShndx maps the defining section of a symbol of the second input
// to the first input's section with the same name. Reserved indices are
// kept as they are.
func (m *merge) translateShndx(def *elf32.Sym) (uint16, string, error) {
	if def.IsUndef() || def.IsReserved() {
		return def.Shndx, m.b.Symtab.SectionName(def), nil
	}
	if int(def.Shndx) >= m.b.View.NumSections() {
		return 0, "", errors.Wrapf(elf32.ErrMalformed, "section index %d out of range in %s", def.Shndx, m.b.Name())
	}
	name := m.b.View.SectionName(int(def.Shndx))
	idx, ok := m.a.View.FindSection(name)
	if !ok {
		return 0, "", errors.Wrapf(ErrResolverInvariantViolated, "section %s of %s has no counterpart in %s",
			name, m.b.Name(), m.a.Name())
	}
	return uint16(idx), name, nil
}

// AssignOffsets places the writers back to back.
func AssignOffsets(m *merge) error {
	offset := uint32(0)
	for _, w := range m.writers {
		w.GetShdr().Offset = offset
		offset += w.FileSize()
	}
	m.buf = make([]byte, offset)
	return nil
}

func CopyBufs(m *merge) error {
	for _, w := range m.writers {
		if err := w.CopyBuf(m); err != nil {
			return err
		}
	}
	return nil
}

// PatchShOff points e_shoff at the section header table. It runs last.
func PatchShOff(m *merge) error {
	field := m.buf[elf32.ShOffFieldOffset:]
	return utils.Write[uint32](field, m.order, m.shdrsWriter.Shdr.Offset)
}
