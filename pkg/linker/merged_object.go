package linker

import (
	"os"
	"path/filepath"

	"github.com/hcyang1106/elf-merger/pkg/elf32"
	"github.com/hcyang1106/elf-merger/pkg/log"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// MergedObject is the complete output image of a merge.
type MergedObject struct {
	Ehdr     elf32.Ehdr
	Shdrs    []elf32.Shdr
	Content  []byte
	Resolved []Symbol
}

func (o *MergedObject) Bytes() []byte {
	return o.Content
}

// View parses the merged image back.
func (o *MergedObject) View() (*elf32.View, error) {
	return elf32.Load(o.Content)
}

// WriteFile stores the object at path. The image goes to a temporary file
// next to path with e_shoff cleared, e_shoff is written last, and the file
// is renamed into place only after that. On error nothing appears at path.
func (o *MergedObject) WriteFile(fs afero.Fs, path string) (err error) {
	tmp, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "creating temporary file for %s", path)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			if rmErr := fs.Remove(tmp.Name()); rmErr != nil && !os.IsNotExist(rmErr) {
				log.Warnf("removing %s: %v", tmp.Name(), rmErr)
			}
		}
	}()

	body := append([]byte(nil), o.Content...)
	field := elf32.ShOffFieldOffset
	patch := append([]byte(nil), body[field:field+4]...)
	copy(body[field:field+4], make([]byte, 4))

	if _, err = tmp.Write(body); err != nil {
		return errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if _, err = tmp.WriteAt(patch, int64(field)); err != nil {
		return errors.Wrapf(err, "patching e_shoff of %s", tmp.Name())
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrapf(err, "syncing %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp.Name())
	}
	if err = fs.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrapf(err, "chmod %s", tmp.Name())
	}
	if err = fs.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "renaming %s to %s", tmp.Name(), path)
	}
	log.Debugf("wrote %d bytes to %s", len(o.Content), path)
	return nil
}
