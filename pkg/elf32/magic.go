package elf32

import (
	"bytes"
	"debug/elf"
)

func CheckMagic(content []byte) bool {
	return bytes.HasPrefix(content, []byte(elf.ELFMAG))
}

func WriteMagic(ident []uint8) {
	copy(ident, elf.ELFMAG)
}
