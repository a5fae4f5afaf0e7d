package iout

import (
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	ErrNegativePosition = errors.New("negative position")
	ErrTooLarge         = errors.New("cursor too large")
)

const maxCursorLen = min(1<<32, math.MaxInt)

// Cursor is an in-memory io.ReadWriteSeeker. Writes overwrite existing bytes
// and grow the buffer when they run past its end. Seeking past the end is
// allowed; a write there fills the gap with zeros. Writes that would grow the
// buffer past 4GiB fail with ErrTooLarge.
type Cursor struct {
	buf []byte
	pos int64
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

func (c *Cursor) Bytes() []byte { return c.buf }
func (c *Cursor) Len() int      { return len(c.buf) }

func (c *Cursor) Read(p []byte) (int, error) {
	if c.pos >= int64(len(c.buf)) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, c.buf[c.pos:])
	c.pos += int64(n)
	return n, nil
}

func (c *Cursor) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if c.pos > maxCursorLen-int64(len(p)) {
		return 0, fmt.Errorf("write %d at %d: %w", len(p), c.pos, ErrTooLarge)
	}
	end := c.pos + int64(len(p))
	if end > int64(len(c.buf)) {
		if end > int64(cap(c.buf)) {
			grown := make([]byte, end, min(max(end, 2*int64(cap(c.buf))), maxCursorLen))
			copy(grown, c.buf)
			c.buf = grown
		} else {
			old := len(c.buf)
			c.buf = c.buf[:end]
			clear(c.buf[old:])
		}
	}
	n := copy(c.buf[c.pos:], p)
	c.pos += int64(n)
	return n, nil
}

func (c *Cursor) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = c.pos
	case io.SeekEnd:
		base = int64(len(c.buf))
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if base+offset < 0 {
		return 0, fmt.Errorf("seek to %d: %w", base+offset, ErrNegativePosition)
	}
	c.pos = base + offset
	return c.pos, nil
}

var _ io.ReadWriteSeeker = (*Cursor)(nil)
