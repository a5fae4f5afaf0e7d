package server

import (
	"log"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/google/uuid"

	"go.senan.xyz/streamwindow/iout"
)

type statusWriter struct {
	http.ResponseWriter
	body   *iout.CountWriter
	status int
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, body: iout.NewCountWriter(w)}
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

//nolint:gochecknoglobals
var (
	statusOK       = color.New(color.BgGreen, color.Bold).SprintfFunc()
	statusRedirect = color.New(color.BgCyan, color.Bold).SprintfFunc()
	statusClient   = color.New(color.BgYellow, color.Bold).SprintfFunc()
	statusServer   = color.New(color.BgRed, color.Bold).SprintfFunc()
	statusOther    = color.New(color.BgWhite, color.Bold).SprintfFunc()
)

func statusToBlock(code int) string {
	block := statusOther
	switch {
	case 200 <= code && code <= 299:
		block = statusOK
	case 300 <= code && code <= 399:
		block = statusRedirect
	case 400 <= code && code <= 499:
		block = statusClient
	case 500 <= code && code <= 599:
		block = statusServer
	}
	return block(" %d ", code)
}

const headerRequestID = "X-Request-Id"

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerRequestID, uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// first middleware. call next before logging so the status and body
		// size have been written
		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)
		log.Printf("response %s for %s `%s` %s id=%s",
			statusToBlock(sw.status), r.Method, r.URL, humanize.Bytes(uint64(sw.body.Count())), w.Header().Get(headerRequestID))
	})
}
