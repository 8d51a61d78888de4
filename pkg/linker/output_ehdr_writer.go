package linker

type OutputEhdrWriter struct {
	OutputWriter
	Content []byte
}

func NewOutputEhdrWriter(a *ObjectFile) *OutputEhdrWriter {
	content := a.View.HeaderBytes()
	o := &OutputEhdrWriter{Content: content}
	o.Name = "ehdr"
	o.Shdr.Size = uint32(len(content))
	return o
}

func (o *OutputEhdrWriter) CopyBuf(m *merge) error {
	copy(m.buf[o.Shdr.Offset:], o.Content)
	return nil
}
