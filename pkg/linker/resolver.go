package linker

import (
	"github.com/hcyang1106/elf-merger/pkg/log"
	"github.com/pkg/errors"
)

// CheckMergeable cross-checks the symbols of a against b. An undefined
// symbol of a must be defined in b, and a symbol defined in a must not also
// be defined in b. Symbols that only exist in b are not checked.
//
// A missing symbol table in either file is reported as an error together
// with an Unresolved verdict; no symbol is scanned in that case.
func CheckMergeable(ctx *Context, a, b *ObjectFile) (Verdict, error) {
	for _, f := range []*ObjectFile{a, b} {
		if !f.HasSymtab() {
			return Verdict{Kind: Unresolved}, errors.Wrapf(ErrMissingSymbolTable, "%s", f.Name())
		}
	}

	v := Verdict{Kind: Mergeable, a: a, b: b}
	symsA, symsB := a.Symtab, b.Symtab
	for i := ctx.resolverScanStart(); i < len(symsA.Syms); i++ {
		sym := &symsA.Syms[i]
		name := symsA.Name(i)
		if name == "" {
			continue
		}

		_, other := symsB.Lookup(name)
		if !sym.IsDefined() {
			if other == nil || !other.IsDefined() {
				log.Debugf("symbol %s [%d] of %s has no definition in %s", name, i, a.Name(), b.Name())
				v.add(Offense{Kind: Unresolved, Name: name, SymIdx: i})
			}
		} else if other != nil && other.IsDefined() {
			log.Debugf("symbol %s [%d] is defined in both %s and %s", name, i, a.Name(), b.Name())
			v.add(Offense{Kind: Conflicting, Name: name, SymIdx: i})
		}
	}
	return v, nil
}
