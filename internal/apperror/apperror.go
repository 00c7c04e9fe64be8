// Package apperror defines the error kinds the API exposes to clients and
// the single JSON envelope they are rendered with.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies a domain failure. The string value is reported to
// clients as error_type.
type Kind string

const (
	KindAuthentication Kind = "AuthenticationError"
	KindAuthorization  Kind = "AuthorizationError"
	KindNotFound       Kind = "ResourceNotFoundError"
	KindConflict       Kind = "ConflictError"
	KindValidation     Kind = "ValidationError"
	KindInternal       Kind = "InternalServerError"
)

// Status returns the fixed HTTP status for the kind.
func (k Kind) Status() int {
	switch k {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure raised next to the invariant it protects.
type Error struct {
	Kind    Kind
	Message string
	Details any
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// style checks work against the sentinels below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinels for errors.Is checks; they carry no message so they match any
// error of their kind.
var (
	ErrAuthentication = &Error{Kind: KindAuthentication}
	ErrAuthorization  = &Error{Kind: KindAuthorization}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrConflict       = &Error{Kind: KindConflict}
	ErrValidation     = &Error{Kind: KindValidation}
)

func Authentication(message string) error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Authorization builds a 403 error. Resources owned by someone else are
// reported as NotFound instead, so handlers do not use it for ownership
// checks.
func Authorization(message string) error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// Validation builds a 422 error; details may be nil.
func Validation(message string, details any) error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

// KindOf reports the kind of err, KindInternal for anything unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
