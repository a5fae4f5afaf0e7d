// Package window exposes a fixed byte range of a seekable stream as a stream
// of its own. Position 0 of a view is the first byte of its window, and reads,
// writes and seeks never reach outside it.
package window

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrInvalidSeek   = errors.New("invalid seek")
	ErrInvalidBounds = errors.New("invalid window bounds")
	ErrReleased      = errors.New("window released")
)

// Flusher is implemented by streams that buffer writes.
type Flusher interface {
	Flush() error
}

// View is a window [start, end) over a seekable stream. It only seeks; see
// Reader, Writer and ReadWriter for streams that can also move data.
//
// A view owns its inner stream until Release. It is not safe for concurrent use.
type View[S io.Seeker] struct {
	inner    S
	start    int64
	size     int64
	pos      int64
	released bool
}

// New seeks inner to start and returns a view of the window [start, end).
func New[S io.Seeker](inner S, start, end int64) (*View[S], error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("[%d, %d): %w", start, end, ErrInvalidBounds)
	}
	if _, err := inner.Seek(start, io.SeekStart); err != nil {
		return nil, err
	}
	return &View[S]{
		inner: inner,
		start: start,
		size:  end - start,
	}, nil
}

// Start is the absolute offset of the window in the inner stream.
func (v *View[S]) Start() int64 { return v.start }

// Size is the number of bytes in the window.
func (v *View[S]) Size() int64 { return v.size }

// Pos is the current position relative to the start of the window.
func (v *View[S]) Pos() int64 { return v.pos }

func (v *View[S]) Remaining() int64 { return v.size - v.pos }

// Release hands back the inner stream, positioned at Start()+Pos(). The view
// can't be used afterwards.
func (v *View[S]) Release() S {
	inner := v.inner
	var zero S
	v.inner = zero
	v.released = true
	return inner
}

// Seek moves to a position relative to the window. Targets before 0 or
// after Size() fail with ErrInvalidSeek and leave the position unchanged.
// Size() itself is a valid target.
func (v *View[S]) Seek(offset int64, whence int) (int64, error) {
	if v.released {
		return 0, ErrReleased
	}

	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = v.pos
	case io.SeekEnd:
		base = v.size
	default:
		return 0, fmt.Errorf("whence %d: %w", whence, ErrInvalidSeek)
	}

	// base is in [0, size] so neither bound can overflow
	if offset < -base || offset > v.size-base {
		return 0, fmt.Errorf("offset %d from %d outside [0, %d]: %w", offset, base, v.size, ErrInvalidSeek)
	}
	target := base + offset

	if _, err := v.inner.Seek(v.start+target, io.SeekStart); err != nil {
		return 0, err
	}
	v.pos = target
	return v.pos, nil
}

func (v *View[S]) clamp(p []byte) []byte {
	if remaining := v.size - v.pos; int64(len(p)) > remaining {
		return p[:remaining]
	}
	return p
}

func (v *View[S]) read(r io.Reader, p []byte) (int, error) {
	if v.released {
		return 0, ErrReleased
	}
	if len(p) == 0 {
		return 0, nil
	}
	if v.pos >= v.size {
		return 0, io.EOF
	}
	n, err := r.Read(v.clamp(p))
	v.pos += int64(n)
	return n, err
}

func (v *View[S]) write(w io.Writer, p []byte) (int, error) {
	if v.released {
		return 0, ErrReleased
	}
	p = v.clamp(p)
	if len(p) == 0 {
		return 0, nil
	}
	n, err := w.Write(p)
	v.pos += int64(n)
	return n, err
}

func (v *View[S]) flush(s any) error {
	if v.released {
		return ErrReleased
	}
	if f, ok := s.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
