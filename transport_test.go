package notes_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nicolagi/notes"
	"github.com/nicolagi/notes/internal/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeBackend starts an in-memory backend and a transport pointed at it.
func newFakeBackend(t *testing.T) (*fakeapi.Backend, *notes.Transport) {
	b := fakeapi.New()
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	tr, err := notes.NewTransport(notes.WithBaseURL(srv.URL))
	require.Nil(t, err)
	return b, tr
}

type capture struct {
	method string
	path   string
	header http.Header
	body   string
}

// newCaptureServer answers every request with the given status and body, remembering the last request.
func newCaptureServer(t *testing.T, status int, body string) (*capture, string) {
	c := new(capture)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		c.method, c.path, c.header, c.body = r.Method, r.URL.RequestURI(), r.Header.Clone(), string(b)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return c, srv.URL
}

func TestTransportDefaults(t *testing.T) {
	c, url := newCaptureServer(t, http.StatusOK, `{"ok":true}`)
	tr, err := notes.NewTransport(notes.WithBaseURL(url + "/"))
	require.Nil(t, err)

	var out map[string]bool
	require.Nil(t, tr.Request(context.Background(), "/things/", notes.RequestOptions{}, &out))
	assert.Equal(t, http.MethodGet, c.method)
	assert.Equal(t, "/things/", c.path)
	assert.Equal(t, "application/json", c.header.Get("Content-Type"))
	assert.NotEmpty(t, c.header.Get("X-Request-Id"))
	assert.Equal(t, "", c.body)
	assert.Equal(t, map[string]bool{"ok": true}, out)
}

func TestTransportHeadersAndBody(t *testing.T) {
	c, url := newCaptureServer(t, http.StatusCreated, `{}`)
	tr, err := notes.NewTransport(notes.WithBaseURL(url))
	require.Nil(t, err)

	opts := notes.RequestOptions{
		Method: http.MethodPost,
		Header: http.Header{
			"Content-Type": {"application/merge-patch+json"},
			"X-Extra":      {"1"},
		},
		Body: []byte(`{"a":1}`),
	}
	require.Nil(t, tr.Request(context.Background(), "/x", opts, nil))
	assert.Equal(t, http.MethodPost, c.method)
	assert.Equal(t, "application/merge-patch+json", c.header.Get("Content-Type"))
	assert.Equal(t, "1", c.header.Get("X-Extra"))
	assert.Equal(t, `{"a":1}`, c.body)
}

func TestTransportHTTPError(t *testing.T) {
	_, url := newCaptureServer(t, http.StatusNotFound, `{"detail":"Note not found"}`)
	tr, err := notes.NewTransport(notes.WithBaseURL(url))
	require.Nil(t, err)

	err = tr.Request(context.Background(), "/notes/9", notes.RequestOptions{Method: http.MethodPut}, nil)
	var httpErr *notes.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, `{"detail":"Note not found"}`, httpErr.Body)
	assert.Equal(t, http.MethodPut, httpErr.Method)
	assert.True(t, errors.Is(err, notes.ErrStatusCode))
}

func TestTransportDecodeError(t *testing.T) {
	_, url := newCaptureServer(t, http.StatusOK, `{not json`)
	tr, err := notes.NewTransport(notes.WithBaseURL(url))
	require.Nil(t, err)

	var out map[string]interface{}
	err = tr.Request(context.Background(), "/x", notes.RequestOptions{}, &out)
	var decodeErr *notes.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "/x", decodeErr.Endpoint)

	// Nothing to decode, nothing to fail.
	assert.Nil(t, tr.Request(context.Background(), "/x", notes.RequestOptions{}, nil))
}

func TestTransportNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	tr, err := notes.NewTransport(notes.WithBaseURL(url))
	require.Nil(t, err)

	err = tr.Request(context.Background(), "/notes/", notes.RequestOptions{}, nil)
	var netErr *notes.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.MethodGet, netErr.Method)
	assert.False(t, errors.Is(err, notes.ErrStatusCode))
}

func TestTransportCancelledContext(t *testing.T) {
	_, tr := newFakeBackend(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tr.Request(ctx, "/notes/", notes.RequestOptions{}, nil)
	var netErr *notes.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTransportWireLog(t *testing.T) {
	_, url := newCaptureServer(t, http.StatusBadRequest, "plain text error")
	var buf bytes.Buffer
	tr, err := notes.NewTransport(notes.WithBaseURL(url), notes.WithWireLogWriter(&buf))
	require.Nil(t, err)

	opts := notes.RequestOptions{Method: http.MethodPost, Body: []byte("{\n  \"title\": \"t\"\n}")}
	require.NotNil(t, tr.Request(context.Background(), "/notes/", opts, nil))

	var entries []map[string]interface{}
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.Nil(t, json.Unmarshal(scanner.Bytes(), &entry), scanner.Text())
		entries = append(entries, entry)
	}
	require.Len(t, entries, 2)
	assert.Equal(t, "request", entries[0]["type"])
	assert.Equal(t, "/notes/", entries[0]["endpoint"])
	assert.Equal(t, map[string]interface{}{"title": "t"}, entries[0]["request"])
	assert.Equal(t, "response", entries[1]["type"])
	assert.Equal(t, float64(http.StatusBadRequest), entries[1]["code"])
	assert.Equal(t, "plain text error", entries[1]["response"])
	assert.Equal(t, entries[0]["id"], entries[1]["id"])
}

func TestTransportWireLogBinaryBody(t *testing.T) {
	_, url := newCaptureServer(t, http.StatusBadRequest, "bad \x01\xff byte")
	var buf bytes.Buffer
	tr, err := notes.NewTransport(notes.WithBaseURL(url), notes.WithWireLogWriter(&buf))
	require.Nil(t, err)
	require.NotNil(t, tr.Request(context.Background(), "/notes/", notes.RequestOptions{}, nil))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var entry map[string]interface{}
	require.Nil(t, json.Unmarshal(lines[1], &entry), string(lines[1]))
	assert.Equal(t, "bad \x01\ufffd byte", entry["response"])
}
