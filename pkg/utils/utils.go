package utils

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/pkg/errors"
)

func Fatal(v any) {
	fmt.Fprintf(os.Stderr, "fatal: %v\n", v)
	if os.Getenv("ELF_MERGER_TRACE") != "" {
		debug.PrintStack()
	}
	os.Exit(1)
}

func MustNo(err error) {
	if err != nil {
		Fatal(err)
	}
}

// Assert panics when res is false. It guards programming contracts,
// not input validation.
func Assert(res bool, format string, args ...any) {
	if !res {
		panic(fmt.Sprintf(format, args...))
	}
}

// Read decodes one fixed-size record from the head of content.
func Read[T any](content []byte, order binary.ByteOrder, val *T) error {
	size := binary.Size(val)
	if size < 0 || len(content) < size {
		return errors.Errorf("need %d bytes for %T, have %d", size, *val, len(content))
	}
	reader := bytes.NewReader(content[:size])
	return errors.WithStack(binary.Read(reader, order, val))
}

// Write encodes val into the head of buf.
func Write[T any](buf []byte, order binary.ByteOrder, val T) error {
	size := binary.Size(val)
	if size < 0 || len(buf) < size {
		return errors.Errorf("need %d bytes for %T, have %d", size, val, len(buf))
	}
	out := bytes.Buffer{}
	if err := binary.Write(&out, order, val); err != nil {
		return errors.WithStack(err)
	}
	copy(buf, out.Bytes())
	return nil
}

// ReadSlice decodes consecutive records of the given size.
func ReadSlice[T any](content []byte, order binary.ByteOrder, size int) ([]T, error) {
	if size <= 0 || len(content)%size != 0 {
		return nil, errors.Errorf("content length %d is not a multiple of %d", len(content), size)
	}
	ret := make([]T, 0, len(content)/size)
	for len(content) > 0 {
		var ele T
		if err := Read[T](content, order, &ele); err != nil {
			return nil, err
		}
		ret = append(ret, ele)
		content = content[size:]
	}
	return ret, nil
}

// WriteSlice encodes vals back to back, each padded to size bytes.
func WriteSlice[T any](vals []T, order binary.ByteOrder, size int) ([]byte, error) {
	buf := make([]byte, len(vals)*size)
	for i, v := range vals {
		if err := Write[T](buf[i*size:], order, v); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// CString returns the NUL-terminated string starting at offset.
// An offset past the end yields "".
func CString(table []byte, offset uint32) string {
	if uint64(offset) >= uint64(len(table)) {
		return ""
	}
	rest := table[offset:]
	if end := bytes.IndexByte(rest, 0); end >= 0 {
		return string(rest[:end])
	}
	return string(rest)
}
