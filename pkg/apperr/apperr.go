// Package apperr carries the typed error kinds the handlers translate into
// HTTP responses. The kind is decided once, at the database boundary where
// the real driver error is available, never by matching message substrings
// downstream.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// Kind classifies an expected failure.
type Kind int

const (
	// Unavailable: the backing store cannot be reached at all.
	Unavailable Kind = iota
	// Rejected: the store refused the operation (constraint violation etc.).
	Rejected
	// NotFound: the referenced record does not exist.
	NotFound
	// Invalid: field-scoped validation failure; never sent to the store.
	Invalid
)

// UnavailableMessage is the fixed, operator-actionable text shown whenever
// the database cannot be reached, replacing whatever the driver said.
const UnavailableMessage = "Cannot connect to database. The PostgreSQL instance may be down or paused. Please check the database service status and connection settings."

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	// Fields carries per-field messages for Invalid errors.
	Fields map[string]string
	cause  error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case Unavailable:
		return http.StatusServiceUnavailable
	case NotFound:
		return http.StatusNotFound
	case Invalid:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// New builds an error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf builds an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation wraps a field→message map produced by the model validators.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: Invalid, Message: "validation failed", Fields: fields}
}

// FromDB classifies a gorm/driver error at the boundary. Connection-level
// failures become Unavailable with the fixed message; a missing row becomes
// NotFound; anything else is a Rejected with the store's message preserved.
func FromDB(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: NotFound, Message: "record not found", cause: err}
	}
	if isConnectionError(err) {
		return &Error{Kind: Unavailable, Message: UnavailableMessage, cause: err}
	}
	return &Error{Kind: Rejected, Message: err.Error(), cause: err}
}

// isConnectionError inspects the driver error chain for transport-level
// failures. These are the only place message text is consulted, because the
// pgx/pq drivers do not export a stable sentinel for every refused dial.
func isConnectionError(err error) bool {
	msg := err.Error()
	for _, marker := range []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"failed to connect",
		"dial error",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
