package linker

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

type File struct {
	Name    string
	Content []byte
}

func NewFile(fs afero.Fs, filename string) (*File, error) {
	content, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	return &File{
		Name:    filename,
		Content: content,
	}, nil
}
