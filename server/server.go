// Package server serves byte windows of the files under a root directory.
package server

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"go.senan.xyz/streamwindow/fileutil"
	"go.senan.xyz/streamwindow/window"
)

var ErrNotDir = errors.New("not a directory")

type Server struct {
	root    string
	logging bool
	handler http.Handler
}

type Option func(*Server)

func WithoutLog() Option {
	return func(s *Server) { s.logging = false }
}

func New(root string, opts ...Option) (*Server, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q: %w", root, ErrNotDir)
	}

	s := &Server{root: root, logging: true}
	for _, opt := range opts {
		opt(s)
	}

	var h http.Handler = http.HandlerFunc(s.serveWindow)
	h = withRequestID(h)
	if s.logging {
		h = withLogging(h)
	}
	s.handler = h
	return s, nil
}

func (s *Server) Root() string { return s.root }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) serveWindow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	path := filepath.Join(s.root, filepath.FromSlash(query.Get("path")))
	if !fileutil.HasPrefix(path, s.root) {
		http.Error(w, "path outside root", http.StatusForbidden)
		return
	}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("error opening %q: %v", path, err)
		http.Error(w, "couldn't open file", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		log.Printf("error stating %q: %v", path, err)
		http.Error(w, "couldn't stat file", http.StatusInternalServerError)
		return
	}
	if !info.Mode().IsRegular() {
		http.Error(w, "not a regular file", http.StatusBadRequest)
		return
	}

	start, end, err := parseBounds(query.Get("start"), query.Get("end"), info.Size())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := window.NewReader(file, start, end)
	if err != nil {
		log.Printf("error opening window of %q: %v", path, err)
		http.Error(w, "couldn't open window", http.StatusInternalServerError)
		return
	}

	name := fileutil.WindowName(path, start, end)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeContent(w, r, name, info.ModTime(), view)
}

// parseBounds reads optional absolute offsets. The window must fit in the
// file since the response advertises its full size.
func parseBounds(startStr, endStr string, fileSize int64) (int64, int64, error) {
	start, end := int64(0), fileSize
	var err error
	if startStr != "" {
		if start, err = strconv.ParseInt(startStr, 10, 64); err != nil {
			return 0, 0, fmt.Errorf("parse start: %w", window.ErrInvalidBounds)
		}
	}
	if endStr != "" {
		if end, err = strconv.ParseInt(endStr, 10, 64); err != nil {
			return 0, 0, fmt.Errorf("parse end: %w", window.ErrInvalidBounds)
		}
	}
	if start < 0 || end < start || end > fileSize {
		return 0, 0, fmt.Errorf("[%d, %d) of %d byte file: %w", start, end, fileSize, window.ErrInvalidBounds)
	}
	return start, end, nil
}
