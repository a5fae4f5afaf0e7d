package main

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestHexWriter(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	out := bufio.NewWriter(&buf)
	h := newHexWriter(out, 6)

	n, err := h.Write([]byte("Test data and then"))
	require.NoError(t, err)
	require.Equal(t, 18, n)
	n, err = h.Write([]byte(" more\x00"))
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.NoError(t, h.Flush())
	require.NoError(t, out.Flush())

	require.Equal(t, ""+
		"00000006  54 65 73 74 20 64 61 74  61 20 61 6e 64 20 74 68  |Test data and th|\n"+
		"00000016  65 6e 20 6d 6f 72 65 00                           |en more.|\n",
		buf.String())
}

var errFull = errors.New("disk full")

type fullWriter struct{}

func (fullWriter) Write([]byte) (int, error) { return 0, errFull }

func TestHexWriterError(t *testing.T) {
	color.NoColor = true

	h := newHexWriter(bufio.NewWriterSize(fullWriter{}, 16), 0)

	// the first line is consumed before the write fails
	n, err := h.Write([]byte("Test data and then more"))
	require.ErrorIs(t, err, errFull)
	require.Equal(t, bytesPerLine, n)
}
