// windowpatch overwrites a window of a file with bytes from stdin.
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
	"go.senan.xyz/flagconf"

	"go.senan.xyz/streamwindow"
	"go.senan.xyz/streamwindow/iout"
	"go.senan.xyz/streamwindow/multierr"
	"go.senan.xyz/streamwindow/sandbox"
	"go.senan.xyz/streamwindow/window"
)

// syncFile makes a flush of the window reach the disk.
type syncFile struct {
	*os.File
}

func (f syncFile) Flush() error {
	return f.Sync()
}

func main() {
	confFile := flag.String("file", "", "path to the file to write to")
	confStart := flag.Int64("start", -1, "absolute offset of the first byte of the window")
	confEnd := flag.Int64("end", -1, "absolute offset after the last byte of the window, -1 for the end of the file (optional)")
	confStrict := flag.Bool("strict", false, "fail if stdin has more bytes than fit in the window (optional)")

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
	if *confStart < 0 {
		errs.Add(errors.New("please provide a start offset"))
	}
	if errs.Len() > 0 {
		log.Fatalf("invalid flags:\n%v", errs)
	}

	box, err := sandbox.New("stdio", "rpath", "wpath")
	if err != nil {
		log.Fatalf("error creating sandbox: %v", err)
	}
	if err := box.ReadWriteFile(*confFile); err != nil {
		log.Fatalf("error adding file to sandbox: %v", err)
	}
	if err := box.Enforce(); err != nil {
		log.Fatalf("error enforcing sandbox: %v", err)
	}

	file, err := os.OpenFile(*confFile, os.O_RDWR, 0)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	defer file.Close()

	end := *confEnd
	if end < 0 {
		info, err := file.Stat()
		if err != nil {
			log.Fatalf("error stating file: %v", err)
		}
		end = info.Size()
	}

	written, err := patch(syncFile{file}, bufio.NewReader(os.Stdin), *confStart, end, *confStrict)
	if err != nil {
		log.Fatalf("error patching [%d, %d): %v", *confStart, end, err)
	}
	log.Printf("wrote %s to [%d, %d)", humanize.Bytes(uint64(written)), *confStart, end)
}

var ErrInputTooLarge = errors.New("input larger than window")

// patch copies in to the window [start, end) of dst. Input that doesn't fit is
// dropped unless strict is set.
func patch(dst io.WriteSeeker, in io.Reader, start, end int64, strict bool) (int64, error) {
	view, err := window.NewWriter(dst, start, end)
	if err != nil {
		return 0, fmt.Errorf("open window: %w", err)
	}

	counted := iout.NewCountReader(in)
	written, err := io.Copy(view, counted)
	switch {
	case errors.Is(err, io.ErrShortWrite):
		if strict {
			return written, fmt.Errorf("%w: %d byte window", ErrInputTooLarge, view.Size())
		}
		log.Printf("input truncated to window, dropped at least %s", humanize.Bytes(uint64(counted.Count()-written)))
	case err != nil:
		return written, fmt.Errorf("copy: %w", err)
	}

	if err := view.Flush(); err != nil {
		return written, fmt.Errorf("flush: %w", err)
	}
	return written, nil
}
