// Package apperror defines the application's error taxonomy.
//
// Services return these typed errors; the HTTP layer maps them to
// status codes with errors.Is/errors.As. The taxonomy is deliberately
// small:
//
//	ErrValidation         → 400, field-keyed messages
//	ErrConflict           → 400, email/username already taken
//	ErrInvalidCredentials → 401, deliberately undifferentiated
//	ErrNotFound           → 404
//	anything else         → 500, details never leak to the client
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AppError carries a sentinel for classification plus the user-facing
// message. For aggregated validation failures Fields holds one message
// per failing field; Message then only serves logs.
type AppError struct {
	Err     error             // sentinel, matched with errors.Is
	Message string            // human-readable error message
	Field   string            // optional: single field causing the error
	Fields  map[string]string // optional: field name → message, for multi-field failures
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// ValidationFailed reports a single invalid field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// ValidationMap reports every failing field of one request at once.
// The settings engine relies on this: callers get all failures, not
// just the first.
func ValidationMap(fields map[string]string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// Conflict reports a uniqueness violation on the named field. The
// message is the exact user-facing string, e.g. "Email is already exist".
func Conflict(field, message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
		Field:   field,
	}
}

// InvalidCredentials is returned for both "no such user" and "wrong
// password" so responses cannot be used to enumerate accounts.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "Email or Password are incorrect",
	}
}
