// internal/pkg/apperr/errors.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind string

const (
	KindTransport  Kind = "transport_failure"
	KindValidation Kind = "validation_failure"
	KindAuth       Kind = "auth_required"
	KindDuplicate  Kind = "duplicate_conflict"
)

// Error represents an application error
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrValidation) works
// regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// StatusCode maps the error kind to an HTTP status
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindDuplicate:
		return http.StatusConflict
	case KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Sentinels for errors.Is checks
var (
	ErrTransport  = &Error{Kind: KindTransport}
	ErrValidation = &Error{Kind: KindValidation}
	ErrAuth       = &Error{Kind: KindAuth}
	ErrDuplicate  = &Error{Kind: KindDuplicate}
)

// Transport wraps a failed remote call
func Transport(op string, err error) *Error {
	return &Error{Kind: KindTransport, Message: op, Err: err}
}

// Validation reports a rule violation detected before any remote call
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// AuthRequired reports an operation attempted without an active session
func AuthRequired(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// Duplicate reports an add where an equivalent record already exists
func Duplicate(message string) *Error {
	return &Error{Kind: KindDuplicate, Message: message}
}

// KindOf returns the kind of err, or the empty kind for foreign errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// StatusCode maps any error to an HTTP status; foreign errors are 500
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}
