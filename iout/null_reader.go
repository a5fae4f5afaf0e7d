package iout

import "io"

type nullReader struct{}

// NewNullReader returns a reader of endless zero bytes.
func NewNullReader() io.Reader {
	return nullReader{}
}

func (nullReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

var _ io.Reader = nullReader{}
