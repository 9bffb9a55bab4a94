package apperrors

import (
	"errors"
	"fmt"
)

// Code classifies an error so controllers can map it to an HTTP status.
type Code string

const (
	CodeValidation   Code = "VALIDATION"
	CodeBusinessRule Code = "BUSINESS_RULE"
	CodeNotFound     Code = "NOT_FOUND"
	CodePersistence  Code = "PERSISTENCE"
	CodeUnauthorized Code = "UNAUTHORIZED"
)

// Error is the application-level error carried from repositories and
// services up to the controllers.
type Error struct {
	Code    Code
	Message string
	// Detalles holds per-field validation messages, when applicable.
	Detalles []string
	Err      error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New builds an application error with the given classification.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds an application error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a classification to an underlying error.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Validation builds a validation error carrying per-field messages.
func Validation(detalles []string) *Error {
	return &Error{Code: CodeValidation, Message: "Error de validación", Detalles: detalles}
}

// CodeOf extracts the classification of err; unclassified errors are
// treated as persistence failures.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodePersistence
}

// Is reports whether err carries the given classification.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// DetallesOf returns the per-field messages of a validation error, if any.
func DetallesOf(err error) []string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Detalles
	}
	return nil
}
