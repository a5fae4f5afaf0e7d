// windowcat prints a window of a file to stdout.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"go.senan.xyz/flagconf"

	"go.senan.xyz/streamwindow"
	"go.senan.xyz/streamwindow/httprange"
	"go.senan.xyz/streamwindow/iout"
	"go.senan.xyz/streamwindow/multierr"
	"go.senan.xyz/streamwindow/sandbox"
	"go.senan.xyz/streamwindow/window"
)

func main() {
	confFile := flag.String("file", "", "path to the file to read from, - for stdin")
	confStart := flag.Int64("start", 0, "absolute offset of the first byte of the window (optional)")
	confEnd := flag.Int64("end", -1, "absolute offset after the last byte of the window, -1 for the end of the file (optional)")
	confRange := flag.String("range", "", "window as an http style range instead of start and end, eg. bytes=6-14 (optional)")
	confPad := flag.Bool("pad", false, "pad windows that run past the end of the file with zeros (optional)")
	confHex := flag.Bool("hex", false, "print a hexdump with absolute offsets instead of raw bytes (optional)")

	confShowVersion := flag.Bool("version", false, "show version")
	confConfigPath := flag.String("config-path", "", "path to config (optional)")

	flag.Parse()
	if err := flagconf.ParseEnv(); err != nil {
		log.Fatalf("error parsing env: %v\n", err)
	}
	if err := flagconf.ParseConfig(*confConfigPath); err != nil {
		log.Fatalf("error parsing config: %v\n", err)
	}

	if *confShowVersion {
		fmt.Printf("%s v%s\n", streamwindow.Name, streamwindow.Version)
		os.Exit(0)
	}

	var errs multierr.Err
	if *confFile == "" {
		errs.Add(errors.New("please provide a file"))
	}
	if *confRange != "" && (*confStart != 0 || *confEnd != -1) {
		errs.Add(errors.New("range can't be used with start or end"))
	}
	if *confRange != "" && *confFile == "-" {
		errs.Add(errors.New("range can't be used with stdin"))
	}
	if !*confHex && isatty.IsTerminal(os.Stdout.Fd()) {
		errs.Add(errors.New("refusing to write binary to a terminal, use -hex"))
	}
	if errs.Len() > 0 {
		log.Fatalf("invalid flags:\n%v", errs)
	}

	box, err := sandbox.New("stdio", "rpath")
	if err != nil {
		log.Fatalf("error creating sandbox: %v", err)
	}
	if *confFile != "-" {
		if err := box.ReadOnlyFile(*confFile); err != nil {
			log.Fatalf("error adding file to sandbox: %v", err)
		}
	}
	if err := box.Enforce(); err != nil {
		log.Fatalf("error enforcing sandbox: %v", err)
	}

	out := bufio.NewWriter(os.Stdout)
	newDst := func(start int64) flushWriter {
		if *confHex {
			return newHexWriter(out, start)
		}
		return out
	}

	var n, start, end int64
	if *confFile == "-" {
		n, start, end, err = copyStdin(newDst, bufio.NewReader(os.Stdin), *confStart, *confEnd, *confPad)
	} else {
		n, start, end, err = copyFile(newDst, *confFile, *confStart, *confEnd, *confRange, *confPad)
	}
	if err != nil {
		log.Fatalf("error copying window: %v", err)
	}
	if err := out.Flush(); err != nil {
		log.Fatalf("error flushing output: %v", err)
	}
	log.Printf("copied %s of [%d, %d)", humanize.Bytes(uint64(n)), start, end)
}

type flushWriter interface {
	io.Writer
	Flush() error
}

func copyFile(newDst func(start int64) flushWriter, path string, start, end int64, rangeExpr string, pad bool) (int64, int64, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("stat file: %w", err)
	}
	if end < 0 {
		end = info.Size()
	}
	if rangeExpr != "" {
		rrange, err := httprange.Parse(rangeExpr, info.Size())
		if err != nil {
			return 0, 0, 0, fmt.Errorf("parse range: %w", err)
		}
		start, end = rrange.Window()
	}

	dst := newDst(start)
	n, err := iout.CopyWindow(dst, file, start, end, pad)
	if err != nil {
		return n, start, end, err
	}
	return n, start, end, dst.Flush()
}

// copyStdin reads from a stream that can't seek, so it skips to start and copies up to the window size, zero padded with pad.
// Without an end it copies until EOF.
func copyStdin(newDst func(start int64) flushWriter, in io.Reader, start, end int64, pad bool) (int64, int64, int64, error) {
	if start < 0 || (end >= 0 && end < start) {
		return 0, 0, 0, fmt.Errorf("[%d, %d): %w", start, end, window.ErrInvalidBounds)
	}
	var length int64
	if end >= 0 {
		length = end - start
		if length == 0 {
			return 0, start, end, nil
		}
	}
	dst := newDst(start)
	n, err := iout.CopyRange(dst, in, start, length, pad)
	if err != nil {
		return n, start, end, err
	}
	return n, start, start + n, dst.Flush()
}
