package usecase

import (
	"errors"
	"fmt"

	"movie-review/pkg/utils"
)

// Error kinds. Every error a service returns on purpose wraps one of these;
// anything else is an internal failure.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUpload       = errors.New("upload failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Error carries a client-facing message and its kind. Fields holds the
// per-field messages of a failed validation.
type Error struct {
	Kind   error
	Msg    string
	Fields map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return e.Msg + ": " + utils.FormatValidationErrors(e.Fields)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

func invalidFields(fields map[string]string) error {
	return &Error{Kind: ErrValidation, Msg: "Validation failed", Fields: fields}
}

func notFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

func conflict(format string, args ...any) error {
	return newError(ErrConflict, format, args...)
}

func unauthorized(format string, args ...any) error {
	return newError(ErrUnauthorized, format, args...)
}

func forbidden(format string, args ...any) error {
	return newError(ErrForbidden, format, args...)
}
