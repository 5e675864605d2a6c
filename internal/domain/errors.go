package domain

import "errors"

// Kind classifies an error for the transport boundary.
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeMissingField       Code = "MISSING_FIELD"
	CodeNothingToUpdate    Code = "NOTHING_TO_UPDATE"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeExpiredToken       Code = "EXPIRED_TOKEN"
	CodeInvalidSignature   Code = "INVALID_SIGNATURE"
	CodeMalformedToken     Code = "MALFORMED_TOKEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInternal           Code = "INTERNAL"
)

// Error is the domain error type. Message is safe to show to clients;
// Cause holds internal detail for logs only.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a domain error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Validation errors
var (
	ErrMissingField    = &Error{Kind: KindValidation, Code: CodeMissingField, Message: "Please provide all required fields"}
	ErrNothingToUpdate = &Error{Kind: KindValidation, Code: CodeNothingToUpdate, Message: "No changes provided"}
)

// Account errors
var (
	ErrAlreadyExists      = &Error{Kind: KindConflict, Code: CodeAlreadyExists, Message: "User already exists"}
	ErrInvalidCredentials = &Error{Kind: KindAuth, Code: CodeInvalidCredentials, Message: "Invalid credentials"}
)

// Token errors
var (
	ErrUnauthenticated  = &Error{Kind: KindAuth, Code: CodeUnauthenticated, Message: "Access token required"}
	ErrExpiredToken     = &Error{Kind: KindAuth, Code: CodeExpiredToken, Message: "Token has expired"}
	ErrInvalidSignature = &Error{Kind: KindAuth, Code: CodeInvalidSignature, Message: "Invalid token signature"}
	ErrMalformedToken   = &Error{Kind: KindAuth, Code: CodeMalformedToken, Message: "Malformed token"}
)

// Lookup errors
var (
	ErrNoteNotFound = &Error{Kind: KindNotFound, Code: CodeNotFound, Message: "Note not found"}
	ErrUserNotFound = &Error{Kind: KindNotFound, Code: CodeNotFound, Message: "User not found"}
)

// MissingField returns a validation error with a field-specific message.
func MissingField(message string) *Error {
	return &Error{Kind: KindValidation, Code: CodeMissingField, Message: message}
}

// Internal wraps an unexpected failure. The client only ever sees the
// generic message.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: "Internal Server Error", Cause: cause}
}

// KindOf returns the kind of err, defaulting to KindInternal for errors
// that are not domain errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// PublicMessage returns the client-facing message for err.
func PublicMessage(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Kind != KindInternal {
		return de.Message
	}
	return "Internal Server Error"
}
