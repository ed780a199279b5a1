// Package apierr defines the error body returned by every API route and the
// gin middleware that renders it.
//
// Handlers report failures with c.Error(apierr.NewNotFound(...)) and return;
// Middleware writes the first error as JSON:
//
//	{"timestamp": "...", "code": 404, "message": "recipient not found", "error": "Not Found"}
//
// The optional "details" field carries the underlying cause.
package apierr

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPError is an error with an HTTP status and a client-facing message.
type HTTPError struct {
	Timestamp time.Time
	Code      int
	Message   string
	// ErrorMsg is the short status description, serialized as "error"
	ErrorMsg string
	// Details is the underlying cause, if any
	Details error
}

// MarshalJSON renders Details as a string and omits it when nil.
func (e HTTPError) MarshalJSON() ([]byte, error) {
	details := ""
	if e.Details != nil {
		details = e.Details.Error()
	}
	return json.Marshal(struct {
		Timestamp time.Time `json:"timestamp"`
		Code      int       `json:"code"`
		Message   string    `json:"message"`
		ErrorMsg  string    `json:"error"`
		Details   string    `json:"details,omitempty"`
	}{e.Timestamp, e.Code, e.Message, e.ErrorMsg, details})
}

func (e *HTTPError) Error() string {
	if e.Details == nil {
		return fmt.Sprintf("http error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("http error %d: %s: %v", e.Code, e.Message, e.Details)
}

func (e *HTTPError) Unwrap() error { return e.Details }

// New returns an HTTPError for code using the standard status text.
func New(code int, msg string, cause error) *HTTPError {
	return &HTTPError{
		Timestamp: time.Now().UTC(),
		Code:      code,
		Message:   msg,
		ErrorMsg:  http.StatusText(code),
		Details:   cause,
	}
}

func NewBadRequest(msg string, cause error) *HTTPError {
	return New(http.StatusBadRequest, msg, cause)
}

func NewUnauthorized(msg string, cause error) *HTTPError {
	return New(http.StatusUnauthorized, msg, cause)
}

func NewForbidden(msg string, cause error) *HTTPError {
	return New(http.StatusForbidden, msg, cause)
}

func NewNotFound(msg string, cause error) *HTTPError {
	return New(http.StatusNotFound, msg, cause)
}

func NewConflict(msg string, cause error) *HTTPError {
	return New(http.StatusConflict, msg, cause)
}

func NewTooManyRequests(msg string, cause error) *HTTPError {
	return New(http.StatusTooManyRequests, msg, cause)
}

// NewInternal is used for store and other unexpected failures.
func NewInternal(msg string, cause error) *HTTPError {
	return New(http.StatusInternalServerError, msg, cause)
}

func NewServiceUnavailable(msg string, cause error) *HTTPError {
	return New(http.StatusServiceUnavailable, msg, cause)
}
