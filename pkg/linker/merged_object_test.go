package linker

import (
	"testing"

	"github.com/hcyang1106/elf-merger/pkg/elf32"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergedAddSub(t *testing.T) *MergedObject {
	t.Helper()
	a := loadObject(t, "add.o", addObject())
	b := loadObject(t, "sub.o", subObject())
	merged, err := checkedMerge(t, NewContext(), a, b)
	require.NoError(t, err)
	return merged
}

func TestWriteFile(t *testing.T) {
	merged := mergedAddSub(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/out", 0o755))

	require.NoError(t, merged.WriteFile(fs, "/out/out.ro"))

	written, err := afero.ReadFile(fs, "/out/out.ro")
	require.NoError(t, err)
	assert.Equal(t, merged.Bytes(), written)

	v, err := elf32.Load(written)
	require.NoError(t, err)
	assert.Equal(t, merged.Ehdr.ShOff, v.Header().ShOff)

	entries, err := afero.ReadDir(fs, "/out")
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file left behind")
	assert.Equal(t, "out.ro", entries[0].Name())
}

func TestWriteFileReplacesExisting(t *testing.T) {
	merged := mergedAddSub(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out.ro", []byte("stale"), 0o644))

	require.NoError(t, merged.WriteFile(fs, "/out.ro"))
	written, err := afero.ReadFile(fs, "/out.ro")
	require.NoError(t, err)
	assert.Equal(t, merged.Bytes(), written)
}

func TestWriteFileFailureLeavesNothing(t *testing.T) {
	merged := mergedAddSub(t)
	base := afero.NewMemMapFs()
	fs := afero.NewReadOnlyFs(base)

	err := merged.WriteFile(fs, "/out.ro")
	require.Error(t, err)

	exists, err := afero.Exists(base, "/out.ro")
	require.NoError(t, err)
	assert.False(t, exists)
}
