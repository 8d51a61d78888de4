package session

import (
	"debug/elf"
	"testing"

	"github.com/hcyang1106/elf-merger/pkg/elf32"
	"github.com/hcyang1106/elf-merger/pkg/elf32/elf32test"
	"github.com/hcyang1106/elf-merger/pkg/linker"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func object(file string, text byte, syms ...elf32test.Symbol) []byte {
	return elf32test.Object{
		File:     file,
		Sections: []elf32test.Section{{Name: ".text", Flags: elf.SHF_ALLOC | elf.SHF_EXECINSTR, Data: []byte{text, text}}},
		Symbols:  syms,
	}.Bytes()
}

func def(name string, value uint32) elf32test.Symbol {
	return elf32test.Symbol{Name: name, Value: value, Section: ".text", Type: elf.STT_FUNC, Bind: elf.STB_GLOBAL}
}

func ref(name string) elf32test.Symbol {
	return elf32test.Symbol{Name: name, Bind: elf.STB_GLOBAL}
}

func newFs(t *testing.T, files map[string][]byte) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, content, 0o644))
	}
	return fs
}

func TestExamineSlots(t *testing.T) {
	fs := newFs(t, map[string][]byte{
		"a.o":   object("a.c", 1),
		"b.o":   object("b.c", 2),
		"c.o":   object("c.c", 3),
		"x.txt": []byte("definitely not ELF"),
	})
	s := New(fs)

	_, err := s.Examine("x.txt")
	assert.True(t, errors.Is(err, elf32.ErrNotAnElfFile))
	assert.Empty(t, s.Files())

	_, _, err = s.Pair()
	assert.True(t, errors.Is(err, ErrNeedTwoFiles))

	_, err = s.Examine("a.o")
	require.NoError(t, err)
	_, err = s.Examine("b.o")
	require.NoError(t, err)
	_, err = s.Examine("c.o")
	assert.True(t, errors.Is(err, ErrTooManyFiles))

	a, b, err := s.Pair()
	require.NoError(t, err)
	assert.Equal(t, "a.o", a.Name())
	assert.Equal(t, "b.o", b.Name())

	s.Refresh()
	assert.Empty(t, s.Files())
	_, err = s.Examine("c.o")
	require.NoError(t, err)
	assert.Len(t, s.Files(), 1)
}

func TestExamineMissingFile(t *testing.T) {
	s := New(afero.NewMemMapFs())
	_, err := s.Examine("nope.o")
	assert.Error(t, err)
	assert.Empty(t, s.Files())
}

func TestMergeWritesOutput(t *testing.T) {
	fs := newFs(t, map[string][]byte{
		"add.o": object("add.c", 0xa, def("add", 0x100), ref("sub")),
		"sub.o": object("sub.c", 0xb, def("sub", 0x200), ref("add")),
	})
	s := New(fs)
	_, err := s.Examine("add.o")
	require.NoError(t, err)
	_, err = s.Examine("sub.o")
	require.NoError(t, err)

	ctx := linker.NewContext()
	ctx.Args.Output = "/merged.ro"
	merged, v, err := s.Merge(ctx)
	require.NoError(t, err)
	assert.True(t, v.IsMergeable())
	require.NotNil(t, merged)

	written, err := afero.ReadFile(fs, "/merged.ro")
	require.NoError(t, err)
	assert.Equal(t, merged.Bytes(), written)
}

func TestMergeBlockedByVerdict(t *testing.T) {
	fs := newFs(t, map[string][]byte{
		"a.o": object("a.c", 1, def("main", 0)),
		"b.o": object("b.c", 2, def("main", 0)),
	})
	s := New(fs)
	_, err := s.Examine("a.o")
	require.NoError(t, err)
	_, err = s.Examine("b.o")
	require.NoError(t, err)

	ctx := linker.NewContext()
	merged, v, err := s.Merge(ctx)
	require.NoError(t, err)
	assert.Nil(t, merged)
	assert.Equal(t, linker.Conflicting, v.Kind)
	assert.Equal(t, "main", v.Name)

	exists, err := afero.Exists(fs, ctx.Args.Output)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCheckNeedsTwoFiles(t *testing.T) {
	s := New(newFs(t, map[string][]byte{"a.o": object("a.c", 1)}))
	_, err := s.Examine("a.o")
	require.NoError(t, err)

	_, err = s.Check(linker.NewContext())
	assert.True(t, errors.Is(err, ErrNeedTwoFiles))
}
