package linker

import "fmt"

// Symbol records one undefined entry of the first input that the merge
// rewrote from the second input's definition.
type Symbol struct {
	Name    string
	SymIdx  int
	Value   uint32
	Shndx   uint16
	Section string
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s [%d] -> %s+0x%x (section %d)", s.Name, s.SymIdx, s.Section, s.Value, s.Shndx)
}
