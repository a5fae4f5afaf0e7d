package iout

import (
	"errors"
	"fmt"
	"io"

	"go.senan.xyz/streamwindow/window"
)

// CopyWindow copies the window [start, end) of rs to w and returns the number
// of bytes written. If pad is set and rs ends inside the window, the rest of
// the window is written as zeros.
func CopyWindow(w io.Writer, rs io.ReadSeeker, start, end int64, pad bool) (int64, error) {
	view, err := window.NewReader(rs, start, end)
	if err != nil {
		return 0, fmt.Errorf("open window: %w", err)
	}
	n, err := io.Copy(w, view)
	if err != nil {
		return n, fmt.Errorf("copy window: %w", err)
	}
	if !pad {
		return n, nil
	}
	return padTo(w, n, view.Size())
}

// CopyRange is CopyWindow for readers that can't seek. It discards start
// bytes then copies up to length bytes, zero padded if pad is set. A length of
// 0 copies until EOF.
func CopyRange(w io.Writer, r io.Reader, start, length int64, pad bool) (int64, error) {
	if _, err := io.CopyN(io.Discard, r, start); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("discard %d: %w", start, err)
	}
	if length == 0 {
		n, err := io.Copy(w, r)
		if err != nil {
			return n, fmt.Errorf("direct copy: %w", err)
		}
		return n, nil
	}
	n, err := io.CopyN(w, r, length)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("copy %d: %w", length, err)
	}
	if !pad {
		return n, nil
	}
	return padTo(w, n, length)
}

// padTo writes zeros after n bytes until size bytes have been written.
func padTo(w io.Writer, n, size int64) (int64, error) {
	if n >= size {
		return n, nil
	}
	padded, err := io.CopyN(w, NewNullReader(), size-n)
	if err != nil {
		return n + padded, fmt.Errorf("pad %d: %w", size-n, err)
	}
	return n + padded, nil
}
