package linker

import (
	"github.com/hcyang1106/elf-merger/pkg/elf32"
	"github.com/hcyang1106/elf-merger/pkg/log"
	"github.com/pkg/errors"
)

// ObjectFile is one loaded input: the file, its ELF view, and its symbol
// index when the object carries a symbol table.
type ObjectFile struct {
	File   *File
	View   *elf32.View
	Symtab *elf32.SymbolIndex
}

func NewObjectFile(file *File) (*ObjectFile, error) {
	view, err := elf32.Load(file.Content)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", file.Name)
	}

	f := &ObjectFile{
		File: file,
		View: view,
	}
	f.Symtab, err = elf32.NewSymbolIndex(view)
	switch {
	case errors.Is(err, elf32.ErrNoSymbolTable):
		log.Debugf("%s has no symbol table", file.Name)
	case err != nil:
		return nil, errors.Wrapf(err, "reading symbol table of %s", file.Name)
	}

	if t := view.FileType(); t != elf32.FileTypeObject {
		log.Warnf("%s is a %s, not a relocatable object", file.Name, t)
	}
	return f, nil
}

func (f *ObjectFile) Name() string {
	return f.File.Name
}

func (f *ObjectFile) HasSymtab() bool {
	return f.Symtab != nil
}
