package kraken

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyResponse is returned when the server replies without a body
var ErrEmptyResponse = errors.New("empty response")

// Kind classifies the terminal outcome of a failed request
type Kind int

const (
	// KindUnknown is any error not produced by the request pipeline
	KindUnknown Kind = iota
	// KindTransport means the HTTP round trip did not complete
	KindTransport
	// KindEmptyResponse means the server sent no body
	KindEmptyResponse
	// KindDecode means the body matched neither the expected shape nor the error shape
	KindDecode
	// KindAPI means the server returned a structured error object
	KindAPI
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindEmptyResponse:
		return "empty_response"
	case KindDecode:
		return "decode"
	case KindAPI:
		return "api"
	default:
		return "unknown"
	}
}

// KindOf reports which pipeline outcome err represents.
// An APIError wins over the DecodeError it may wrap.
func KindOf(err error) Kind {
	var (
		apiErr       *APIError
		decodeErr    *DecodeError
		transportErr *TransportError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.Is(err, ErrEmptyResponse):
		return KindEmptyResponse
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &transportErr):
		return KindTransport
	default:
		return KindUnknown
	}
}

// TransportError wraps a failure to complete the HTTP round trip (DNS, TLS, reset, timeout)
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is a body that could not be parsed as JSON of the requested shape.
// A request body that cannot be encoded is reported the same way, with a zero StatusCode.
type DecodeError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DecodeError) Error() string {
	if e.StatusCode == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("failed to decode response (status %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// APIError represents a structured error object returned by the API.
//
// Cause holds the DecodeError from the success-shape attempt when the error
// object arrived in place of the expected payload.
type APIError struct {
	StatusCode int    `json:"status"`
	ErrorText  string `json:"error"`
	Message    string `json:"message"`
	Cause      error  `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	text := e.ErrorText
	if text == "" {
		text = http.StatusText(e.StatusCode)
	}
	if e.Message != "" && e.Message != text {
		return fmt.Sprintf("kraken API error: status %d: %s: %s", e.StatusCode, text, e.Message)
	}
	return fmt.Sprintf("kraken API error: status %d: %s", e.StatusCode, text)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// empty reports whether none of the error-shape fields were present in the body
func (e *APIError) empty() bool {
	return e.StatusCode == 0 && e.ErrorText == "" && e.Message == ""
}
