package elf32

import "debug/elf"

type FileType uint8

const (
	FileTypeUnknown FileType = iota
	FileTypeEmpty
	FileTypeObject
	FileTypeExecutable
	FileTypeShared
)

func (t FileType) String() string {
	switch t {
	case FileTypeEmpty:
		return "empty"
	case FileTypeObject:
		return "relocatable object"
	case FileTypeExecutable:
		return "executable"
	case FileTypeShared:
		return "shared object"
	}
	return "unknown"
}

// FileType classifies the view by its e_type field.
func (v *View) FileType() FileType {
	if len(v.content) == 0 {
		return FileTypeEmpty
	}
	switch elf.Type(v.ehdr.Type) {
	case elf.ET_REL:
		return FileTypeObject
	case elf.ET_EXEC:
		return FileTypeExecutable
	case elf.ET_DYN:
		return FileTypeShared
	}
	return FileTypeUnknown
}
