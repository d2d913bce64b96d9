package client

import (
	"errors"
	"fmt"
)

// genericMessage is shown when the server omits an error string.
const genericMessage = "operation failed"

// APIError is a request the server rejected: an envelope with success=false
// or a non-2xx status. Message carries the server-provided error text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// TransportError is a network-level failure: the server was never reached
// or the connection broke before a response arrived.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsStatus returns true if err (or any wrapped error) is an APIError with
// the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == code
	}
	return false
}

// Message extracts the human-readable message for err: the server's text
// for an APIError, the generic fallback for everything else. Suitable for
// surfacing directly in the UI.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericMessage
}
