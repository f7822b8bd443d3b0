// Package errors provides structured error types for the symplace tool.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into three groups:
//   - INVALID_*: input validation failures (netlist, options)
//   - Placement faults (EMPTY_GROUP, UNKNOWN_MODULE, ...): fatal engine
//     conditions that abort a pack
//   - Placement rejections (OVERLAP_DETECTED, SYMMETRY_VIOLATION,
//     NEGATIVE_COORD): validator failures that reject a candidate placement
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownModule, "tree references %q", name)
//	if errors.Is(err, errors.ErrCodeUnknownModule) {
//	    // Handle missing module
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidNetlist, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidNetlist Code = "INVALID_NETLIST"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"

	// Fatal placement faults
	ErrCodeEmptyGroup        Code = "EMPTY_GROUP"
	ErrCodeUnknownModule     Code = "UNKNOWN_MODULE"
	ErrCodeStructuralInvalid Code = "STRUCTURAL_INVALID"
	ErrCodeBoundaryInvariant Code = "BOUNDARY_INVARIANT"
	ErrCodeCoordOverflow     Code = "COORDINATE_OVERFLOW"

	// Placement rejections
	ErrCodeOverlapDetected   Code = "OVERLAP_DETECTED"
	ErrCodeSymmetryViolation Code = "SYMMETRY_VIOLATION"
	ErrCodeNegativeCoord     Code = "NEGATIVE_COORD"

	// Non-fatal placement warnings
	ErrCodeDimensionMismatch Code = "DIMENSION_MISMATCH"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// IsFatal reports whether the error is a fatal placement fault, as opposed
// to a validator rejection that the caller should treat as a rejected
// candidate rather than a bug.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeEmptyGroup, ErrCodeUnknownModule, ErrCodeStructuralInvalid,
		ErrCodeBoundaryInvariant, ErrCodeCoordOverflow:
		return true
	}
	return false
}
