package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const bytesPerLine = 16

//nolint:gochecknoglobals
var offsetColour = color.New(color.FgYellow).SprintFunc()

// hexWriter formats bytes like `hexdump -C`, numbering lines from an absolute
// offset so they match the file and not the window.
type hexWriter struct {
	w      *bufio.Writer
	offset int64
	line   []byte
}

func newHexWriter(w *bufio.Writer, offset int64) *hexWriter {
	return &hexWriter{w: w, offset: offset, line: make([]byte, 0, bytesPerLine)}
}

func (h *hexWriter) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		n := min(bytesPerLine-len(h.line), len(p))
		h.line = append(h.line, p[:n]...)
		p = p[n:]
		if len(h.line) == bytesPerLine {
			if err := h.writeLine(); err != nil {
				return total - len(p), err
			}
		}
	}
	return total, nil
}

// Flush writes out a partial last line.
func (h *hexWriter) Flush() error {
	if len(h.line) == 0 {
		return nil
	}
	return h.writeLine()
}

func (h *hexWriter) writeLine() error {
	var hexCol, asciiCol strings.Builder
	for i := 0; i < bytesPerLine; i++ {
		if i == bytesPerLine/2 {
			hexCol.WriteByte(' ')
		}
		if i >= len(h.line) {
			hexCol.WriteString("   ")
			continue
		}
		b := h.line[i]
		fmt.Fprintf(&hexCol, "%02x ", b)
		if b < 0x20 || b > 0x7e {
			b = '.'
		}
		asciiCol.WriteByte(b)
	}
	if _, err := fmt.Fprintf(h.w, "%s  %s |%s|\n", offsetColour(fmt.Sprintf("%08x", h.offset)), hexCol.String(), asciiCol.String()); err != nil {
		return err
	}
	h.offset += int64(len(h.line))
	h.line = h.line[:0]
	return nil
}
