package core

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// APIError is a structured failure returned by the API client whenever the
// server answers with a non-2xx status: the status code plus the
// server-provided, human-readable message.
type APIError struct {
	StatusCode int
	Message    string
}

func NewAPIError(code int, message string) error {
	if message == "" {
		message = http.StatusText(code)
	}
	return &APIError{StatusCode: code, Message: message}
}

func (err APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", err.StatusCode, err.Message)
}

// IsAuthFailure reports whether err is a server authentication rejection.
func (err APIError) IsAuthFailure() bool {
	return err.StatusCode == http.StatusUnauthorized || err.StatusCode == http.StatusForbidden
}

// AsAPIError unwraps err down to an *APIError if it carries one.
func AsAPIError(err error) (*APIError, bool) {
	apiErr, ok := errors.Cause(err).(*APIError)
	return apiErr, ok
}
