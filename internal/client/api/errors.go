package api

import (
	"errors"
	"fmt"
)

// ErrUnavailable reports a transport-level failure: the request never
// produced an HTTP response. Match with errors.Is.
var ErrUnavailable = errors.New("server unavailable")

// ValidationError is an HTTP 4xx response carrying a field→message map
// in its validationErrors payload. Fields is never nil; when the server
// omits the map the error degrades to an empty one rather than failing
// classification.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// FieldErrors returns the per-field messages. The result is non-nil.
func (e *ValidationError) FieldErrors() map[string]string {
	if e.Fields == nil {
		return map[string]string{}
	}
	return e.Fields
}

// APIError is any other HTTP error response; Message is the
// server-supplied message string, shown to the user as is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}
