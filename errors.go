package notes

import (
	"errors"
	"fmt"
)

// ErrStatusCode is matched (via errors.Is) by every HTTPError, for callers that only care that the server said no.
var ErrStatusCode = errors.New("unhandled status code")

// NetworkError means the request never produced an HTTP response: connection refused, DNS failure, a cancelled
// context, and so on.
type NetworkError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is returned for any response with a status code outside 2xx. Body holds the response text, or a
// description of why it could not be read.
type HTTPError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Body)
}

func (e *HTTPError) Unwrap() error {
	return ErrStatusCode
}

// DecodeError is returned when a successful response does not hold the JSON we expected.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s, unmarshal: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// OpError is what a store keeps in its error slot after a failed operation. The error returned by the failing
// method is the client error itself; OpError only adds which store operation was being attempted.
type OpError struct {
	// Op is a short description such as "add note" or "complete action item".
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Message is the text to show users, without the underlying cause.
func (e *OpError) Message() string {
	return "failed to " + e.Op
}
