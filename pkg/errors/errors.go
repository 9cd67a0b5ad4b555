// Package errors provides structured error types for TimeLinePlot.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP server and the library
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The input codes mirror the failures a timeline can hit before anything is
// drawn:
//   - MALFORMED_ENTRY: a record is missing time, title or message
//   - TIME_PARSE: a time string is not a valid timestamp
//   - EMPTY_DATASET: nothing to draw
//   - DEGENERATE_RANGE: the visible date range spans zero days (or is inverted)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyDataset, "no entries to draw")
//	if errors.Is(err, errors.ErrCodeEmptyDataset) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTimeParse, origErr, "bad time %q", s)
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Entry and range errors
	ErrCodeMalformedEntry  Code = "MALFORMED_ENTRY"
	ErrCodeTimeParse       Code = "TIME_PARSE"
	ErrCodeEmptyDataset    Code = "EMPTY_DATASET"
	ErrCodeDegenerateRange Code = "DEGENERATE_RANGE"

	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeNetwork      Code = "NETWORK_ERROR"

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

// IsInput reports whether err was caused by bad caller input rather than a
// failure inside the renderer.
func IsInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeMalformedEntry, ErrCodeTimeParse, ErrCodeEmptyDataset, ErrCodeDegenerateRange,
		ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidConfig, ErrCodeInvalidDimensions,
		ErrCodeInvalidPath:
		return true
	}
	return false
}

// Exit codes returned by the command-line tool.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitInput    = 2
	ExitCanceled = 130
)

// ExitCode maps err to a process exit status: input errors exit 2,
// cancellation 130, anything else 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case IsInput(err):
		return ExitInput
	default:
		return ExitFailure
	}
}
