package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a zwogen error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // bad CLI/tool arguments
	ErrMalformedInput   ErrorCode = "MALFORMED_INPUT"   // bad or missing activity fields
	ErrInvalidProfile   ErrorCode = "INVALID_PROFILE"   // FTP <= 0
	ErrInsufficientData ErrorCode = "INSUFFICIENT_DATA" // input too short to segment
	ErrSerialization    ErrorCode = "SERIALIZATION"     // empty workout
	ErrNotFound         ErrorCode = "NOT_FOUND"         // unknown profile or history row
	ErrInternal         ErrorCode = "INTERNAL"          // unexpected failure
)

// ConvertError represents a structured error with code and details.
// Every failure is terminal for the batch run; there is no retry path.
type ConvertError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ConvertError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates an error for invalid request parameters.
func NewInvalidRequest(msg string) *ConvertError {
	return &ConvertError{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewMalformedInput creates an error for activity records that cannot be
// parsed. The field name identifies the offending input field.
func NewMalformedInput(field, msg string) *ConvertError {
	return &ConvertError{
		Code:    ErrMalformedInput,
		Message: fmt.Sprintf("malformed activity input: %s", msg),
		Details: map[string]any{"field": field},
	}
}

// NewInvalidProfile creates an error for a non-positive FTP.
func NewInvalidProfile(ftpWatts int) *ConvertError {
	return &ConvertError{
		Code:    ErrInvalidProfile,
		Message: fmt.Sprintf("ftp must be a positive integer watts value, got %d", ftpWatts),
		Details: map[string]any{"ftp_watts": ftpWatts},
	}
}

// NewInsufficientData creates an error for an activity too short to
// segment into a meaningful workout.
func NewInsufficientData(gotSeconds, minSeconds int) *ConvertError {
	return &ConvertError{
		Code:    ErrInsufficientData,
		Message: fmt.Sprintf("activity spans %ds, need at least %ds to segment", gotSeconds, minSeconds),
		Details: map[string]any{"got_seconds": gotSeconds, "min_seconds": minSeconds},
	}
}

// NewSerialization creates an error for a workout that cannot be written.
func NewSerialization(msg string) *ConvertError {
	return &ConvertError{
		Code:    ErrSerialization,
		Message: msg,
	}
}

// NewNotFound creates an error for a missing profile or history row.
func NewNotFound(identifier string) *ConvertError {
	return &ConvertError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *ConvertError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ConvertError{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is checks if an error is (or wraps) a ConvertError with the given code.
func Is(err error, code ErrorCode) bool {
	var cErr *ConvertError
	if stderrors.As(err, &cErr) {
		return cErr.Code == code
	}
	return false
}
