// Package errs defines the error value every handler failure is reported
// with: a client-facing message, an HTTP status and, optionally, the
// field-level validation errors and the underlying cause.
//
// The cause is never serialized. It exists so the rendering side can log
// what actually went wrong while the client only sees Message.
package errs

import (
	"errors"
	"net/http"
)

// InvalidInputsMessage is returned for every request body that fails decoding or validation.
const InvalidInputsMessage = "Invalid inputs passed, please check your data."

// FieldError describes a single invalid request field.
//
//	{ "field": "description", "error": "must be at least 5 characters" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is a failure that can be rendered as an HTTP response.
type HTTPError struct {
	Message string       `json:"message"`
	Status  int          `json:"-"`
	Errors  []FieldError `json:"errors,omitempty"`

	cause error
}

// Error returns the client-facing message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Cause returns the underlying error, or nil.
func (e *HTTPError) Cause() error {
	return e.cause
}

// New creates an HTTPError with the given message and status.
func New(message string, status int) *HTTPError {
	return &HTTPError{Message: message, Status: status}
}

// Wrap creates an HTTPError that keeps err as its hidden cause.
func Wrap(err error, message string, status int) *HTTPError {
	return &HTTPError{Message: message, Status: status, cause: err}
}

// NotFound creates a 404 HTTPError.
func NotFound(message string) *HTTPError {
	return New(message, http.StatusNotFound)
}

// Internal creates a 500 HTTPError. The cause is kept for logging only.
func Internal(err error, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(http.StatusInternalServerError)
	}
	return Wrap(err, message, http.StatusInternalServerError)
}

// InvalidInputs creates a 422 HTTPError listing the offending fields.
func InvalidInputs(fields []FieldError) *HTTPError {
	return &HTTPError{
		Message: InvalidInputsMessage,
		Status:  http.StatusUnprocessableEntity,
		Errors:  fields,
	}
}

// As converts err into an *HTTPError, wrapping unknown errors as a generic 500.
func As(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return Internal(err, "")
}
