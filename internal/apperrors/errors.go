package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates the request collides with existing state
// (duplicate code, referenced entity, repeated transition).
var ErrConflict = errors.New("conflict")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = fmt.Errorf("%w: resource already exists", ErrConflict)

// ErrForbidden indicates a state transition that is not allowed for the resource's current state.
var ErrForbidden = errors.New("forbidden transition")

// ErrPeriodLocked indicates the target date falls inside a closed accounting period.
var ErrPeriodLocked = errors.New("accounting period is closed")

// ErrInternal is the fallback for infrastructure failures.
var ErrInternal = errors.New("internal error")

// ErrRetryable marks storage failures that may succeed on a fresh transaction
// (serialization failures, deadlocks).
var ErrRetryable = errors.New("retryable storage failure")

// AppError wraps an infrastructure error with an HTTP-ish status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the wrapped error so errors.Is keeps working through AppError.
func (e *AppError) Unwrap() error {
	return e.Err
}
