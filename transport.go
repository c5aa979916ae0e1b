package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	uuid "github.com/nu7hatch/gouuid"
	log "github.com/sirupsen/logrus"
)

// DefaultBaseURL is where the notes backend listens when run locally.
const DefaultBaseURL = "http://localhost:8000"

type transportOption func(*Transport) error

// WithBaseURL sets the scheme, host and optional path prefix that endpoints are appended to.
func WithBaseURL(baseURL string) transportOption {
	return func(t *Transport) error {
		t.baseURL = strings.TrimSuffix(baseURL, "/")
		return nil
	}
}

// WithHTTPClient replaces http.DefaultClient, e.g., to set a timeout (the transport has none of its own).
func WithHTTPClient(hc *http.Client) transportOption {
	return func(t *Transport) error {
		t.hc = hc
		return nil
	}
}

// WithWireLog is an option to be passed to NewTransport in order to log all requests and responses to the
// specified log file. Useful for debugging the client itself, shouldn't be needed in normal operation.
func WithWireLog(pathname string) transportOption {
	return func(t *Transport) error {
		f, err := os.OpenFile(pathname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err == nil {
			t.wlog = f
			t.closer = f
		}
		return err
	}
}

// WithWireLogWriter is like WithWireLog but logs to an arbitrary writer, which the transport won't close.
func WithWireLogWriter(w io.Writer) transportOption {
	return func(t *Transport) error {
		t.wlog = w
		return nil
	}
}

// RequestOptions configures a single call to Transport.Request. The zero value is a GET without a body.
type RequestOptions struct {
	// One of GET, POST, PUT, DELETE. Empty means GET.
	Method string

	// Merged over the default Content-Type: application/json header; values here win.
	Header http.Header

	// Already serialized JSON, or nil for no body.
	Body []byte
}

// Transport performs one HTTP round trip per call, sending and expecting JSON. There are no retries and no
// caching; every failure is reported to the caller as a *NetworkError, *HTTPError or *DecodeError. A Transport is
// safe for concurrent use.
type Transport struct {
	baseURL string
	hc      *http.Client

	// If set, log all requests and responses here, one per line, in JSON format.
	wlog   io.Writer
	wmu    sync.Mutex
	closer io.Closer
}

// NewTransport creates a transport for the backend at DefaultBaseURL unless WithBaseURL says otherwise.
func NewTransport(opts ...transportOption) (*Transport, error) {
	t := &Transport{
		baseURL: DefaultBaseURL,
		hc:      http.DefaultClient,
		wlog:    io.Discard,
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Close releases the wire log file opened by WithWireLog, if any.
func (t *Transport) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

// Request sends a request to the given endpoint (a path such as /notes/ or /notes/3) and decodes the JSON
// response into out. If out is nil the response body is read and discarded.
func (t *Transport) Request(ctx context.Context, endpoint string, opts RequestOptions, out interface{}) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+endpoint, body)
	if err != nil {
		return &NetworkError{Method: method, Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vv := range opts.Header {
		req.Header.Del(k)
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	u, _ := uuid.NewV4()
	requestID := u.String()
	req.Header.Set("X-Request-Id", requestID)

	t.wire(fmt.Sprintf(`{"type": "request", "id": %q, "method": %q, "endpoint": %q, "request": `,
		requestID, method, endpoint), opts.Body)
	r, err := t.hc.Do(req)
	if err != nil {
		return &NetworkError{Method: method, Endpoint: endpoint, Err: err}
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.WithFields(log.Fields{
				"op":    method + " " + endpoint,
				"cause": err,
			}).Warning("Could not close response body")
		}
	}()

	b, readErr := io.ReadAll(r.Body)
	t.wire(fmt.Sprintf(`{"type": "response", "id": %q, "code": %d, "response": `, requestID, r.StatusCode), b)
	if r.StatusCode < 200 || r.StatusCode > 299 {
		var responseText string
		if readErr != nil {
			responseText = fmt.Sprintf("unknown, because of error reading body: %v", readErr)
		} else {
			responseText = string(b)
		}
		// Debug only: the caller gets the error and decides whether it's worth reporting.
		log.WithFields(log.Fields{
			"op":   method + " " + endpoint,
			"code": r.StatusCode,
			"text": responseText,
		}).Debug("Unsuccessful response")
		return &HTTPError{Method: method, Endpoint: endpoint, StatusCode: r.StatusCode, Body: responseText}
	}
	if readErr != nil {
		return &NetworkError{Method: method, Endpoint: endpoint, Err: fmt.Errorf("read body: %w", readErr)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// wire writes one wire log line: prefix, then the payload (embedded as-is if it's JSON, as a JSON string otherwise).
func (t *Transport) wire(prefix string, payload []byte) {
	if t.wlog == io.Discard {
		return
	}
	t.wmu.Lock()
	defer t.wmu.Unlock()
	_, _ = io.WriteString(t.wlog, prefix)
	switch {
	case len(payload) == 0:
		_, _ = io.WriteString(t.wlog, "null")
	case json.Valid(payload):
		// Compact keeps it one line per entry even if the server pretty-prints.
		var buf bytes.Buffer
		_ = json.Compact(&buf, payload)
		_, _ = t.wlog.Write(buf.Bytes())
	default:
		// Invalid UTF-8 becomes U+FFFD, the line stays valid JSON.
		b, _ := json.Marshal(string(payload))
		_, _ = t.wlog.Write(b)
	}
	_, _ = io.WriteString(t.wlog, "}\n")
}
