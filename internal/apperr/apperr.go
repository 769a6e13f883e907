// Package apperr defines the error taxonomy shared by services and handlers.
// Every business failure carries a kind (which fixes the HTTP status) and a
// localized message key; handlers translate errors at the outer boundary and
// never leak internals.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a business failure.
type Kind uint8

const (
	Unauthorized Kind = iota + 1 // no/invalid/expired credential, always generic
	Forbidden                    // authenticated but insufficient role
	NotFound                     // absent or not visible to the caller
	Conflict                     // lifecycle-state contradiction
	Validation                   // malformed or out-of-range field
	Duplicate                    // uniqueness violation
)

// Error is a classified business error. Key is the localized message key
// returned to the client; Detail optionally narrows the failure (e.g. which
// staff id in a batch could not be resolved).
type Error struct {
	Kind   Kind
	Key    string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Key + ": " + e.Detail
	}
	return e.Key
}

// New builds an error of the given kind and message key.
func New(kind Kind, key string) *Error {
	return &Error{Kind: kind, Key: key}
}

// Newf builds an error with a formatted detail.
func Newf(kind Kind, key, format string, args ...any) *Error {
	return &Error{Kind: kind, Key: key, Detail: fmt.Sprintf(format, args...)}
}

// Is reports whether err is an apperr.Error of the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// Key extracts the message key, or a generic fallback for unclassified errors.
func Key(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Key
	}
	return "INTERNAL_ERROR"
}

// Status maps an error to its HTTP status code. Unclassified errors are 500.
func Status(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Validation, Duplicate:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
