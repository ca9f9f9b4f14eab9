package activecampaign

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a single entry of the "errors" array returned by the API.
type APIError struct {
	Title  string          `json:"title"            yaml:"title"`
	Detail string          `json:"detail,omitempty" yaml:"detail,omitempty"`
	Code   string          `json:"code,omitempty"   yaml:"code,omitempty"`
	Source *APIErrorSource `json:"source,omitempty" yaml:"source,omitempty"`
}

// APIErrorSource points at the offending request field.
type APIErrorSource struct {
	Pointer string `json:"pointer" yaml:"pointer"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Title
	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	if e.Source != nil && e.Source.Pointer != "" {
		msg += " (" + e.Source.Pointer + ")"
	}

	return msg
}

// HTTPError is a response the server sent with a non-2xx status. The
// transport layer never produces it on its own; resource clients convert
// responses into it so callers can inspect the original status and body.
type HTTPError struct {
	StatusCode int
	Body       []byte
	Errors     []APIError
	Message    string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	switch {
	case len(e.Errors) == 1:
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Errors[0].Error())
	case len(e.Errors) > 1:
		parts := make([]string, 0, len(e.Errors))
		for i := range e.Errors {
			parts = append(parts, e.Errors[i].Error())
		}

		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, strings.Join(parts, "; "))
	case e.Message != "":
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
}

// FirstError returns the first API error or nil.
func (e *HTTPError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// NewHTTPError builds an HTTPError from a status code and raw body, parsing
// the API's error envelope when present.
func NewHTTPError(statusCode int, body []byte) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: statusCode,
		Body:       body,
	}

	var envelope struct {
		Errors  []APIError `json:"errors"`
		Message string     `json:"message"`
	}

	if len(body) > 0 && json.Unmarshal(body, &envelope) == nil {
		httpErr.Errors = envelope.Errors
		httpErr.Message = envelope.Message
	}

	return httpErr
}

// TransportError is returned when no response was received at all, e.g. the
// connection could not be established, was reset, or timed out.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying transport failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired             = errors.New("config is required")
	ErrAPIURLRequired             = errors.New("API URL is required")
	ErrAPITokenRequired           = errors.New("API token is required")
	ErrInvalidConfig              = errors.New("invalid config")
	ErrInvalidRequest             = errors.New("invalid request")
	ErrIDRequired                 = errors.New("id is required")
	ErrEventTrackingNotConfigured = errors.New("event tracking is not configured (actid and key required)")
	ErrUnexpectedResponse         = errors.New("unexpected response")
)

func hasStatus(err error, status int) bool {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == status
	}

	return false
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 response.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsUnprocessable checks if the error is a 422 validation response.
func IsUnprocessable(err error) bool {
	return hasStatus(err, http.StatusUnprocessableEntity)
}

// IsTransport checks if the error is a transport-level failure.
func IsTransport(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}
