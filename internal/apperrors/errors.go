// Package apperrors defines the error taxonomy shared by all features.
// Errors carry a kind that the transport layer translates to an HTTP status.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport-level translation.
type Kind int

const (
	// KindInternal is a persistence or collaborator failure. Maps to 500.
	KindInternal Kind = iota
	// KindValidation is bad input or a business-rule violation. Maps to 400.
	KindValidation
	// KindUnauthorized is a missing or invalid session. Maps to 401.
	KindUnauthorized
	// KindForbidden is an authenticated access to another user's resource. Maps to 403.
	KindForbidden
	// KindNotFound is a missing resource. Maps to 404.
	KindNotFound
)

// Error is an error with a kind and a user-facing message.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.err }

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the user-facing message without the wrapped cause.
func (e *Error) Message() string { return e.msg }

// Validation creates a bad-input / business-rule error.
func Validation(msg string) *Error {
	return &Error{kind: KindValidation, msg: msg}
}

// Unauthorized creates a missing/invalid-session error.
func Unauthorized(msg string) *Error {
	return &Error{kind: KindUnauthorized, msg: msg}
}

// Forbidden creates an error for access to another user's resource.
func Forbidden(msg string) *Error {
	return &Error{kind: KindForbidden, msg: msg}
}

// NotFound creates a missing-resource error.
func NotFound(msg string) *Error {
	return &Error{kind: KindNotFound, msg: msg}
}

// Internal wraps a persistence or collaborator failure. The message is
// user-facing; the cause is kept for logs only.
func Internal(msg string, err error) *Error {
	return &Error{kind: KindInternal, msg: msg, err: err}
}

// KindOf reports the kind of err, walking the wrap chain.
// Unclassified errors are treated as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

// HTTPStatus maps an error to the status code its kind requires.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
