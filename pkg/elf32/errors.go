package elf32

import "github.com/pkg/errors"

var (
	ErrNotAnElfFile  = errors.New("not an ELF file")
	ErrNoSymbolTable = errors.New("no symbol table")
	ErrMalformed     = errors.New("malformed ELF32 object")
)
