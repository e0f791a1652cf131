// Package apierror provides the standardized error envelope and the domain
// error taxonomy for the API. All errors returned to clients go through this
// package to ensure consistency and to prevent leaking internal details
// (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func New(msg, details string) *APIError {
	return &APIError{Error: msg, Details: details}
}

// FieldsError wraps multiple validation field errors (422 responses).
type FieldsError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func NewFields(fields map[string]string) *FieldsError {
	return &FieldsError{Error: "erro de validação", Fields: fields}
}

// Kind classifies a domain error so handlers can map it to an HTTP status
// without string matching.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindInsufficientStock
	KindConflict
	KindAuth
)

// Error is the typed domain error carried from services up to handlers.
// Msg holds the short Portuguese summary shown to the client; Err (optional)
// holds the underlying cause, surfaced in the envelope's details field.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindInsufficientStock:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error        { return &Error{Kind: KindValidation, Msg: msg} }
func NotFound(msg string) *Error          { return &Error{Kind: KindNotFound, Msg: msg} }
func InsufficientStock(msg string) *Error { return &Error{Kind: KindInsufficientStock, Msg: msg} }
func Conflict(msg string) *Error          { return &Error{Kind: KindConflict, Msg: msg} }
func Auth(msg string) *Error              { return &Error{Kind: KindAuth, Msg: msg} }

// Unexpected wraps an arbitrary failure, preserving the original cause for
// the details field.
func Unexpected(msg string, err error) *Error {
	return &Error{Kind: KindUnexpected, Msg: msg, Err: err}
}

// From extracts a typed *Error from err, wrapping unknown errors as
// KindUnexpected so every failure still produces the standard envelope.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindUnexpected, Msg: "erro interno do servidor", Err: err}
}

// Envelope renders the {error, details} JSON body for err.
func Envelope(err *Error) *APIError {
	details := ""
	if err.Err != nil {
		details = err.Err.Error()
	}
	return New(err.Msg, details)
}
