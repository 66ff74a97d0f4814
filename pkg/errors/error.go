// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, configuration and formats
//   - Destination errors (200-299): Creating, writing to and closing destination writers
//   - Task errors (300-399): Task setup, commit, abort and input reading
//
// Failures tied to a single output destination are reported as *DestinationError,
// which carries the destination identifier next to the code:
//
//	// A destination writer could not be opened
//	err := errors.NewCreationError("2024/part-m-00000", cause)
//
//	// Check the kind of failure
//	if errors.IsCloseError(err) { ... }
//
// Plain failures use *Error:
//
//	err := errors.Newf(errors.ErrCodeInvalidParameter, "unknown route %q", route)
//	if errors.HasCode(err, errors.ErrCodeInvalidParameter) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
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
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
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

// DestinationError reports a failure of the writer bound to one output destination.
type DestinationError struct {
	Code        ErrorCode
	Destination string
	Cause       error
}

// NewCreationError reports that the writer for destination could not be opened.
func NewCreationError(destination string, cause error) *DestinationError {
	return &DestinationError{
		Code:        ErrCodeWriterCreationFailed,
		Destination: destination,
		Cause:       cause,
	}
}

// NewWriteError reports that a write to an already open destination failed.
func NewWriteError(destination string, cause error) *DestinationError {
	return &DestinationError{
		Code:        ErrCodeWriteFailed,
		Destination: destination,
		Cause:       cause,
	}
}

// NewCloseError reports that the writer for destination failed to flush or close.
func NewCloseError(destination string, cause error) *DestinationError {
	return &DestinationError{
		Code:        ErrCodeCloseFailed,
		Destination: destination,
		Cause:       cause,
	}
}

// Error implements the error interface.
func (e *DestinationError) Error() string {
	var action string

	switch e.Code {
	case ErrCodeWriterCreationFailed:
		action = "failed to create writer"
	case ErrCodeWriteFailed:
		action = "failed to write record"
	case ErrCodeCloseFailed:
		action = "failed to close writer"
	default:
		action = "destination error"
	}

	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s for destination %q: %v", e.Code, action, e.Destination, e.Cause)
	}

	return fmt.Sprintf("[%d] %s for destination %q", e.Code, action, e.Destination)
}

// Unwrap returns the underlying error cause.
func (e *DestinationError) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// coded is implemented by every structured error in this package.
type coded interface {
	ErrorCode() ErrorCode
}

// ErrorCode returns the error's code.
func (e *Error) ErrorCode() ErrorCode {
	return e.Code
}

// ErrorCode returns the error's code.
func (e *DestinationError) ErrorCode() ErrorCode {
	return e.Code
}

// GetCode extracts the ErrorCode of the outermost *Error or *DestinationError in err's chain.
// Returns ErrCodeUnknown if there is none.
func GetCode(err error) ErrorCode {
	var c coded
	if errors.As(err, &c) {
		return c.ErrorCode()
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// GetDestination returns the destination identifier carried by err, if any.
func GetDestination(err error) (string, bool) {
	var destErr *DestinationError
	if errors.As(err, &destErr) {
		return destErr.Destination, true
	}

	return "", false
}

// IsCreationError checks if err reports a destination writer that could not be opened.
func IsCreationError(err error) bool {
	return HasCode(err, ErrCodeWriterCreationFailed)
}

// IsWriteError checks if err reports a failed write to an open destination.
func IsWriteError(err error) bool {
	return HasCode(err, ErrCodeWriteFailed)
}

// IsCloseError checks if err reports a destination writer that failed to close.
func IsCloseError(err error) bool {
	return HasCode(err, ErrCodeCloseFailed)
}
