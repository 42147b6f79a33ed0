// Package errors provides coded errors shared by the settlement desk packages.
//
// Codes are grouped by the layer that raises them:
//   - General errors (1-99)
//   - Argument and validation errors (100-199): bad page sizes, empty wizard
//     fields, malformed addresses, amounts and expiry dates
//   - Storage errors (200-299): trade store failures and lookups
//   - Collaborator errors (300-399): submission and token balance providers
//
// Usage:
//
//	err := errors.New(errors.ErrCodeInvalidArgument, "page size must be positive")
//	err := errors.Wrapf(errors.ErrCodeQueryFailed, cause, "failed to load trade %s", id)
//	if errors.HasCode(err, errors.ErrCodeTradeNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error is an error carrying an ErrorCode and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps cause with the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps cause with the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is is errors.Is, re-exported so callers only import one errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As, re-exported so callers only import one errors package.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the first *Error in err's chain,
// or ErrCodeUnknown when there is none.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode reports whether err carries code.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// FieldError reports the wizard fields that are still empty on a step.
type FieldError struct {
	Step   string
	Fields []string
}

// NewFieldError returns an *Error coded ErrCodeMissingField whose cause is a FieldError.
func NewFieldError(step string, fields []string) *Error {
	fe := &FieldError{Step: step, Fields: fields}

	return Wrap(ErrCodeMissingField, fmt.Sprintf("step %q is incomplete", step), fe)
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("missing required fields: %v", e.Fields)
}

// MissingFields returns the empty fields carried by err, if any.
func MissingFields(err error) []string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Fields
	}

	return nil
}
