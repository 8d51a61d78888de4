package linker

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type VerdictKind uint8

const (
	Mergeable VerdictKind = iota
	Unresolved
	Conflicting
)

func (k VerdictKind) String() string {
	switch k {
	case Mergeable:
		return "mergeable"
	case Unresolved:
		return "unresolved"
	case Conflicting:
		return "conflicting"
	}
	return fmt.Sprintf("verdict(%d)", uint8(k))
}

// Offense is one symbol of file A that blocks the merge.
type Offense struct {
	Kind   VerdictKind
	Name   string
	SymIdx int
}

func (o Offense) String() string {
	switch o.Kind {
	case Unresolved:
		return fmt.Sprintf("symbol %s undefined", o.Name)
	case Conflicting:
		return fmt.Sprintf("symbol %s multiply defined", o.Name)
	}
	return o.Name
}

// Verdict is the outcome of CheckMergeable over the whole symbol set. Kind
// and Name latch the first offense; Offenses holds all of them.
type Verdict struct {
	Kind     VerdictKind
	Name     string
	Offenses []Offense

	a, b *ObjectFile
}

func (v Verdict) IsMergeable() bool {
	return v.Kind == Mergeable
}

// For reports whether the verdict was computed for exactly this pair.
func (v Verdict) For(a, b *ObjectFile) bool {
	return v.a != nil && v.a == a && v.b == b
}

func (v *Verdict) add(o Offense) {
	if len(v.Offenses) == 0 {
		v.Kind = o.Kind
		v.Name = o.Name
	}
	v.Offenses = append(v.Offenses, o)
}

// Err folds every offense into one error, or returns nil when mergeable.
func (v Verdict) Err() error {
	var result *multierror.Error
	for _, o := range v.Offenses {
		result = multierror.Append(result, errors.New(o.String()))
	}
	return result.ErrorOrNil()
}

func (v Verdict) String() string {
	if v.Kind == Mergeable {
		return v.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", v.Kind, v.Name)
}
