package linker

type InputSection struct {
	ObjFile *ObjectFile
	Content []byte
	Shndx   uint32
	Offset  uint32
}

func NewInputSection(obj *ObjectFile, shndx int) (*InputSection, error) {
	content, err := obj.View.SectionBytes(shndx)
	if err != nil {
		return nil, err
	}
	return &InputSection{
		ObjFile: obj,
		Content: content,
		Shndx:   uint32(shndx),
	}, nil
}

func (i *InputSection) WriteTo(buf []byte) {
	copy(buf[i.Offset:], i.Content)
}
