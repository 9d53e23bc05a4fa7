package myflix

import (
	"errors"
	"fmt"
	"net/http"
)

// UserMessage is the only error text surfaced to users. Raw server
// error bodies and transport details stay in the logs.
const UserMessage = "Something not right; please try again later"

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid myflix configuration")
	// ErrNoSession indicates an operation needed a logged-in user and none exists
	ErrNoSession = errors.New("no active session; log in first")
)

// ErrorKind distinguishes the two failure origins an operation can hit.
type ErrorKind int

const (
	// KindTransport means the request never completed (DNS, refused
	// connection, timeout). There is no status code.
	KindTransport ErrorKind = iota
	// KindHTTP means the server answered with a non-2xx status.
	KindHTTP
)

func (k ErrorKind) String() string {
	if k == KindTransport {
		return "transport"
	}
	return "http"
}

// ClientError is the single normalized error shape every operation
// returns on failure. The user-facing message is always UserMessage;
// StatusCode, Body and Err retain the diagnostic detail.
type ClientError struct {
	Kind       ErrorKind
	StatusCode int    // set for KindHTTP
	Body       string // raw response body for KindHTTP
	Err        error  // underlying cause for KindTransport
}

// Error implements the error interface. It deliberately returns the
// generic user message regardless of the underlying cause.
func (e *ClientError) Error() string {
	return UserMessage
}

// Unwrap exposes the transport cause, if any.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// Detail returns the full diagnostic description for logs.
func (e *ClientError) Detail() string {
	if e.Kind == KindTransport {
		return fmt.Sprintf("transport error: %v", e.Err)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *ClientError) IsUnauthorized() bool {
	return e.Kind == KindHTTP && (e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// IsNotFound checks if the error indicates a not found response
func (e *ClientError) IsNotFound() bool {
	return e.Kind == KindHTTP && e.StatusCode == http.StatusNotFound
}
