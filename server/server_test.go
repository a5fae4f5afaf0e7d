package server_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.senan.xyz/streamwindow/server"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "stream.bin"), []byte("BeforeTest dataAfter"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0o700))

	s, err := server.New(root, server.WithoutLog())
	require.NoError(t, err)

	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, query url.Values, header http.Header) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/?"+query.Encode(), nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServeWindow(t *testing.T) {
	t.Parallel()
	ts := newServer(t)

	resp, body := get(t, ts, url.Values{"path": {"stream.bin"}, "start": {"6"}, "end": {"15"}}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Test data", body)
	require.Equal(t, "9", resp.Header.Get("Content-Length"))
	require.Equal(t, `attachment; filename="stream.6-15.bin"`, resp.Header.Get("Content-Disposition"))
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestServeWindowDefaults(t *testing.T) {
	t.Parallel()
	ts := newServer(t)

	_, body := get(t, ts, url.Values{"path": {"stream.bin"}}, nil)
	require.Equal(t, "BeforeTest dataAfter", body)

	_, body = get(t, ts, url.Values{"path": {"stream.bin"}, "start": {"15"}}, nil)
	require.Equal(t, "After", body)

	_, body = get(t, ts, url.Values{"path": {"stream.bin"}, "end": {"6"}}, nil)
	require.Equal(t, "Before", body)
}

func TestServeWindowRange(t *testing.T) {
	t.Parallel()
	ts := newServer(t)

	query := url.Values{"path": {"stream.bin"}, "start": {"6"}, "end": {"15"}}

	resp, body := get(t, ts, query, http.Header{"Range": {"bytes=5-"}})
	require.Equal(t, http.StatusPartialContent, resp.StatusCode)
	require.Equal(t, "data", body)
	require.Equal(t, "bytes 5-8/9", resp.Header.Get("Content-Range"))

	resp, body = get(t, ts, query, http.Header{"Range": {"bytes=-4"}})
	require.Equal(t, http.StatusPartialContent, resp.StatusCode)
	require.Equal(t, "data", body)

	resp, body = get(t, ts, query, http.Header{"Range": {"bytes=0-3"}})
	require.Equal(t, http.StatusPartialContent, resp.StatusCode)
	require.Equal(t, "Test", body)

	// the window hides the rest of the file
	resp, _ = get(t, ts, query, http.Header{"Range": {"bytes=9-"}})
	require.Equal(t, http.StatusRequestedRangeNotSatisfiable, resp.StatusCode)
}

func TestServeWindowErrors(t *testing.T) {
	t.Parallel()
	ts := newServer(t)

	status := func(query url.Values) int {
		t.Helper()
		resp, _ := get(t, ts, query, nil)
		return resp.StatusCode
	}

	require.Equal(t, http.StatusNotFound, status(url.Values{"path": {"missing.bin"}}))
	require.Equal(t, http.StatusForbidden, status(url.Values{"path": {"../etc/passwd"}}))
	require.Equal(t, http.StatusBadRequest, status(url.Values{"path": {"dir"}}))
	require.Equal(t, http.StatusBadRequest, status(url.Values{"path": {"stream.bin"}, "start": {"7"}, "end": {"6"}}))
	require.Equal(t, http.StatusBadRequest, status(url.Values{"path": {"stream.bin"}, "end": {"21"}}))
	require.Equal(t, http.StatusBadRequest, status(url.Values{"path": {"stream.bin"}, "start": {"-1"}}))
	require.Equal(t, http.StatusBadRequest, status(url.Values{"path": {"stream.bin"}, "start": {"x"}}))

	resp, err := ts.Client().Post(ts.URL+"/?path=stream.bin", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestNewNotDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := server.New(path)
	require.ErrorIs(t, err, server.ErrNotDir)

	_, err = server.New(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLogging(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a"), []byte("abc"), 0o600))
	s, err := server.New(root)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?path=a&start=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "bc", rec.Body.String())
}

func TestListenAndServe(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.ListenAndServe(ctx, addr, http.NotFoundHandler())
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNotFound
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server didn't shut down")
	}
}
