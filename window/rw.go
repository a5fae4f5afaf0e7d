package window

import "io"

// Reader is a View over a stream that can be read.
type Reader[S io.ReadSeeker] struct {
	View[S]
}

func NewReader[S io.ReadSeeker](inner S, start, end int64) (*Reader[S], error) {
	v, err := New(inner, start, end)
	if err != nil {
		return nil, err
	}
	return &Reader[S]{View: *v}, nil
}

// Read reads at most Remaining() bytes from the inner stream. At the end of
// the window it returns 0, io.EOF without reading the inner stream.
func (r *Reader[S]) Read(p []byte) (int, error) {
	return r.read(r.inner, p)
}

// Writer is a View over a stream that can be written.
type Writer[S io.WriteSeeker] struct {
	View[S]
}

func NewWriter[S io.WriteSeeker](inner S, start, end int64) (*Writer[S], error) {
	v, err := New(inner, start, end)
	if err != nil {
		return nil, err
	}
	return &Writer[S]{View: *v}, nil
}

// Write writes at most Remaining() bytes of p. Bytes that don't fit in the
// window are dropped and the shorter count is returned with a nil error, so
// callers that need all of p written must check n. io.Copy and friends report
// this as io.ErrShortWrite.
func (w *Writer[S]) Write(p []byte) (int, error) {
	return w.write(w.inner, p)
}

// Flush flushes the inner stream if it is a Flusher.
func (w *Writer[S]) Flush() error {
	return w.flush(w.inner)
}

// ReadWriter is a View over a stream that can be read and written.
type ReadWriter[S io.ReadWriteSeeker] struct {
	View[S]
}

func NewReadWriter[S io.ReadWriteSeeker](inner S, start, end int64) (*ReadWriter[S], error) {
	v, err := New(inner, start, end)
	if err != nil {
		return nil, err
	}
	return &ReadWriter[S]{View: *v}, nil
}

func (rw *ReadWriter[S]) Read(p []byte) (int, error) {
	return rw.read(rw.inner, p)
}

func (rw *ReadWriter[S]) Write(p []byte) (int, error) {
	return rw.write(rw.inner, p)
}

func (rw *ReadWriter[S]) Flush() error {
	return rw.flush(rw.inner)
}

var (
	_ io.ReadSeeker      = (*Reader[io.ReadSeeker])(nil)
	_ io.WriteSeeker     = (*Writer[io.WriteSeeker])(nil)
	_ io.ReadWriteSeeker = (*ReadWriter[io.ReadWriteSeeker])(nil)
	_ Flusher            = (*ReadWriter[io.ReadWriteSeeker])(nil)
)
