// Package errors provides structured error types for the autolayout engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Construction and parse failures are reported immediately to the caller:
//   - INCOMPATIBLE_ANCHOR_KIND: a constraint relates anchors of different kinds or axes
//   - PARSE_ERROR: a visual format string or constraint expression is malformed
//   - INVALID_*: other input validation failures
//
// Solve-time problems are not returned as errors. The solver collects them as
// diagnostics next to a usable result; AMBIGUOUS_OR_UNSATISFIABLE is the code
// used when a caller asks for those diagnostics as a single error.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeIncompatibleAnchorKind, "cannot relate %s to %s", a, b)
//	if errors.Is(err, errors.ErrCodeIncompatibleAnchorKind) {
//	    // Handle construction error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, syntaxErr, "parse %q", format)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Constraint construction errors
	ErrCodeIncompatibleAnchorKind Code = "INCOMPATIBLE_ANCHOR_KIND"
	ErrCodeInvalidPriority        Code = "INVALID_PRIORITY"

	// Format language and scenario errors
	ErrCodeParse           Code = "PARSE_ERROR"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidScenario Code = "INVALID_SCENARIO"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// Layout tree errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeDuplicateID Code = "DUPLICATE_ID"

	// Solve-time diagnostics
	ErrCodeAmbiguousOrUnsatisfiable Code = "AMBIGUOUS_OR_UNSATISFIABLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
