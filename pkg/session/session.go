// Package session keeps the object files a user has examined, at most two
// of them, the pair a mergeability check and a merge operate on.
package session

import (
	"github.com/hcyang1106/elf-merger/pkg/linker"
	"github.com/hcyang1106/elf-merger/pkg/log"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const MaxFiles = 2

var (
	ErrTooManyFiles = errors.Errorf("can't examine more than %d ELF files", MaxFiles)
	ErrNeedTwoFiles = errors.Errorf("must have exactly %d ELF files opened", MaxFiles)
)

type Session struct {
	fs    afero.Fs
	files []*linker.ObjectFile
}

func New(fs afero.Fs) *Session {
	return &Session{fs: fs}
}

// Examine loads filename into the next free slot. A file that is not ELF
// does not take a slot.
func (s *Session) Examine(filename string) (*linker.ObjectFile, error) {
	if len(s.files) >= MaxFiles {
		return nil, ErrTooManyFiles
	}
	file, err := linker.NewFile(s.fs, filename)
	if err != nil {
		return nil, err
	}
	obj, err := linker.NewObjectFile(file)
	if err != nil {
		return nil, err
	}
	s.files = append(s.files, obj)
	log.Debugf("slot %d: %s", len(s.files)-1, filename)
	return obj, nil
}

func (s *Session) Files() []*linker.ObjectFile {
	return append([]*linker.ObjectFile(nil), s.files...)
}

// Pair returns the two examined files in examine order.
func (s *Session) Pair() (*linker.ObjectFile, *linker.ObjectFile, error) {
	if len(s.files) != MaxFiles {
		return nil, nil, ErrNeedTwoFiles
	}
	return s.files[0], s.files[1], nil
}

// Refresh empties both slots.
func (s *Session) Refresh() {
	s.files = nil
}

// Check runs the mergeability check on the examined pair.
func (s *Session) Check(ctx *linker.Context) (linker.Verdict, error) {
	a, b, err := s.Pair()
	if err != nil {
		return linker.Verdict{Kind: linker.Unresolved}, err
	}
	return linker.CheckMergeable(ctx, a, b)
}

// Merge checks the pair and, when mergeable, writes the merged object to
// ctx.Args.Output. A blocking verdict is returned with a nil object and a
// nil error.
func (s *Session) Merge(ctx *linker.Context) (*linker.MergedObject, linker.Verdict, error) {
	v, err := s.Check(ctx)
	if err != nil || !v.IsMergeable() {
		return nil, v, err
	}
	a, b, _ := s.Pair()
	merged, err := linker.Merge(ctx, a, b, v)
	if err != nil {
		return nil, v, err
	}
	if err := merged.WriteFile(s.fs, ctx.Args.Output); err != nil {
		return nil, v, err
	}
	return merged, v, nil
}
