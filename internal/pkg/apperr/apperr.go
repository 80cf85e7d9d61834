// Package apperr provides typed application errors. Each error carries a
// string code that survives wrapping and maps onto an HTTP status at the
// API boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error condition.
type Code string

const (
	// CodeNotFound indicates a requested resource does not exist or is not visible to the caller.
	CodeNotFound Code = "NOT_FOUND"

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput Code = "INVALID_INPUT"

	// CodeUnauthorized indicates missing, invalid or expired credentials.
	CodeUnauthorized Code = "UNAUTHORIZED"

	// CodeConflict indicates the resource already exists.
	CodeConflict Code = "CONFLICT"

	// CodeExecutionFailed indicates an external tool or container failed.
	CodeExecutionFailed Code = "EXECUTION_FAILED"

	// CodeUnavailable indicates a dependency (docker, object store) is not reachable.
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"

	// CodeInternal indicates an unexpected failure.
	CodeInternal Code = "INTERNAL_ERROR"
)

// Error is an error with a code and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so errors.Is(err, apperr.ErrNotFound) works
// for every not found error regardless of its message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Cause == nil && t.Code == e.Code
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound     = &Error{Code: CodeNotFound}
	ErrInvalidInput = &Error{Code: CodeInvalidInput}
	ErrUnauthorized = &Error{Code: CodeUnauthorized}
	ErrConflict     = &Error{Code: CodeConflict}
)

// New creates an error with the given code.
func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error with the given code around cause.
func Wrap(code Code, cause error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// NotFound creates a CodeNotFound error.
func NotFound(format string, args ...interface{}) *Error {
	return New(CodeNotFound, format, args...)
}

// InvalidInput creates a CodeInvalidInput error.
func InvalidInput(format string, args ...interface{}) *Error {
	return New(CodeInvalidInput, format, args...)
}

// Unauthorized creates a CodeUnauthorized error.
func Unauthorized(format string, args ...interface{}) *Error {
	return New(CodeUnauthorized, format, args...)
}

// Conflict creates a CodeConflict error.
func Conflict(format string, args ...interface{}) *Error {
	return New(CodeConflict, format, args...)
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// HTTPStatus maps err to the HTTP status code the API answers with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeConflict:
		return http.StatusConflict
	case CodeExecutionFailed:
		return http.StatusBadGateway
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
