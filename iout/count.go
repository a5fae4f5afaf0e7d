package iout

import (
	"io"
	"sync/atomic"
)

// counter can be read from another goroutine while data is moving.
type counter struct {
	n atomic.Int64
}

func (c *counter) Count() int64 { return c.n.Load() }
func (c *counter) Reset()       { c.n.Store(0) }

type CountReader struct {
	counter
	r io.Reader
}

func NewCountReader(r io.Reader) *CountReader {
	return &CountReader{r: r}
}

func (c *CountReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

type CountWriter struct {
	counter
	w io.Writer
}

func NewCountWriter(w io.Writer) *CountWriter {
	return &CountWriter{w: w}
}

func (c *CountWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n.Add(int64(n))
	return n, err
}

var _ io.Reader = (*CountReader)(nil)
var _ io.Writer = (*CountWriter)(nil)
