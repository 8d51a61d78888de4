// Package report renders object files, verdicts and merge results for the
// terminal.
package report

import (
	"debug/elf"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/hcyang1106/elf-merger/pkg/elf32"
	"github.com/hcyang1106/elf-merger/pkg/linker"
	"github.com/olekukonko/tablewriter"
)

type Printer struct {
	w     io.Writer
	debug bool
}

// New returns a printer writing to w. With debug set, section and symbol
// tables carry extra columns.
func New(w io.Writer, debug bool) *Printer {
	return &Printer{w: w, debug: debug}
}

func (p *Printer) table(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(p.w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func hex(v uint32) string {
	return fmt.Sprintf("%08x", v)
}

func encoding(data uint8) string {
	switch elf.Data(data) {
	case elf.ELFDATA2LSB:
		return "2's complement, little endian"
	case elf.ELFDATA2MSB:
		return "2's complement, big endian"
	}
	return "unknown"
}

// Header prints the ELF header summary of obj.
func (p *Printer) Header(obj *linker.ObjectFile) {
	h := obj.View.Header()
	color.New(color.FgHiCyan, color.Bold).Fprintf(p.w, "%s\n", obj.Name())

	table := p.table([]string{"Field", "Value"})
	table.AppendBulk([][]string{
		{"Magic", string(h.Ident[1:4])},
		{"Data", encoding(h.Ident[elf.EI_DATA])},
		{"Type", obj.View.FileType().String()},
		{"Machine", elf.Machine(h.Machine).String()},
		{"Entry point", "0x" + strconv.FormatUint(uint64(h.Entry), 16)},
		{"Section header offset", strconv.Itoa(int(h.ShOff))},
		{"Section headers", strconv.Itoa(obj.View.NumSections())},
		{"Section header size", strconv.Itoa(int(h.ShEntSize))},
		{"Program header offset", strconv.Itoa(int(h.PhOff))},
		{"Program headers", strconv.Itoa(int(h.PhNum))},
		{"Program header size", strconv.Itoa(int(h.PhEntSize))},
	})
	table.Render()
}

// Sections lists every section header of obj.
func (p *Printer) Sections(obj *linker.ObjectFile) {
	header := []string{"[Nr]", "Name", "Addr", "Off", "Size", "Type"}
	if p.debug {
		header = append(header, "Shdr")
	}
	color.New(color.FgHiCyan, color.Bold).Fprintf(p.w, "%s\n", obj.Name())

	table := p.table(header)
	for i, s := range obj.View.Sections() {
		row := []string{
			fmt.Sprintf("[%2d]", i),
			s.Name,
			hex(s.Addr),
			fmt.Sprintf("%06x", s.Offset),
			fmt.Sprintf("%06x", s.Size),
			s.Type.String(),
		}
		if p.debug {
			row = append(row, fmt.Sprintf("%06x", obj.View.ShdrFileOffset(i)))
		}
		table.Append(row)
	}
	table.Render()
}

func sectionIndex(sym *elf32.Sym) string {
	switch {
	case sym.IsUndef():
		return "UND"
	case sym.IsAbs():
		return "ABS"
	case sym.Shndx == uint16(elf.SHN_COMMON):
		return "COM"
	}
	return strconv.Itoa(int(sym.Shndx))
}

// Symbols lists the symbol table of obj. A file without one gets a notice
// instead of a table.
func (p *Printer) Symbols(obj *linker.ObjectFile) {
	color.New(color.FgHiCyan, color.Bold).Fprintf(p.w, "%s\n", obj.Name())
	if !obj.HasSymtab() {
		color.New(color.FgHiYellow).Fprintf(p.w, "no symbol table\n")
		return
	}

	header := []string{"[Nr]", "Value", "Type", "Bind", "Ndx", "Section", "Name"}
	if p.debug {
		header = append(header, "Size")
	}
	table := p.table(header)
	si := obj.Symtab
	for i := range si.Syms {
		sym := &si.Syms[i]
		row := []string{
			fmt.Sprintf("[%2d]", i),
			hex(sym.Val),
			strings.TrimPrefix(sym.Type().String(), "STT_"),
			strings.TrimPrefix(sym.Bind().String(), "STB_"),
			sectionIndex(sym),
			si.SectionName(sym),
			si.Name(i),
		}
		if p.debug {
			row = append(row, strconv.Itoa(int(sym.Size)))
		}
		table.Append(row)
	}
	table.Render()
}

// Verdict prints the outcome of a mergeability check, one line per
// offense when the pair cannot be merged.
func (p *Printer) Verdict(v linker.Verdict) {
	if v.IsMergeable() {
		color.New(color.FgHiGreen, color.Bold).Fprintf(p.w, "Files can be merged!\n")
		return
	}
	red := color.New(color.FgHiRed, color.Bold)
	for _, o := range v.Offenses {
		red.Fprintf(p.w, "%s\n", o)
	}
}

// Merged prints the symbols a merge resolved and where the result went.
func (p *Printer) Merged(merged *linker.MergedObject, path string) {
	if len(merged.Resolved) > 0 {
		table := p.table([]string{"[Nr]", "Name", "Value", "Ndx", "Section"})
		for _, s := range merged.Resolved {
			table.Append([]string{
				fmt.Sprintf("[%2d]", s.SymIdx),
				s.Name,
				hex(s.Value),
				strconv.Itoa(int(s.Shndx)),
				s.Section,
			})
		}
		table.Render()
	}
	color.New(color.FgHiGreen, color.Bold).Fprintf(p.w, "merged object written to %s (%d bytes)\n", path, len(merged.Bytes()))
}
