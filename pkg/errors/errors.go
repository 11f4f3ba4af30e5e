// Package errors provides structured error types for pthscan.
//
// This package defines error codes and types that enable:
//   - Consistent failure policies across the scan pipeline
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes map onto the failure kinds the scanner distinguishes:
//   - TRANSPORT_ERROR, NOT_FOUND: a fetch did not complete
//   - DECODING_ERROR: a listing page is not valid text
//   - ARCHIVE_FORMAT, MEMBER_READ: an artifact is not a readable archive
//   - RESUME_TOKEN_NOT_FOUND: --continue-from names an unknown link
//   - INVALID_*: configuration and input validation failures
//
// Per-package failures are absorbed by the evaluator and reported as a
// negative verdict. Only listing and resume failures reach the caller.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeResumeTokenNotFound, "link %q not in listing", token)
//	if errors.Is(err, errors.ErrCodeResumeTokenNotFound) {
//	    // abort before dispatch
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTransport, origErr, "fetch %s", url)
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
	ErrCodeInvalidLink   Code = "INVALID_LINK"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Fetch errors
	ErrCodeTransport Code = "TRANSPORT_ERROR"
	ErrCodeNotFound  Code = "NOT_FOUND"
	ErrCodeDecoding  Code = "DECODING_ERROR"

	// Archive errors
	ErrCodeArchiveFormat Code = "ARCHIVE_FORMAT"
	ErrCodeMemberRead    Code = "MEMBER_READ"

	// Run control errors
	ErrCodeResumeTokenNotFound Code = "RESUME_TOKEN_NOT_FOUND"

	// Internal errors, e.g. results that could not be written out
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
// The outermost *Error wins, so a MEMBER_READ wrapping a TRANSPORT_ERROR
// reports MEMBER_READ.
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

// NoEvidence reports whether err is a per-artifact failure that the
// evaluator treats as "nothing found" rather than a fault.
func NoEvidence(err error) bool {
	switch GetCode(err) {
	case ErrCodeArchiveFormat, ErrCodeMemberRead, ErrCodeTransport, ErrCodeNotFound, ErrCodeDecoding:
		return true
	}
	return false
}
