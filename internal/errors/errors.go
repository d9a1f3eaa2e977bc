package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeInvalidInput represents a non-positive or malformed work item
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	// ErrorTypeRemote represents a non-2xx response from the compute service
	ErrorTypeRemote ErrorType = "remote"
	// ErrorTypeDecode represents a malformed compute service response
	ErrorTypeDecode ErrorType = "decode"
	// ErrorTypeEmptyResultSet represents aggregation over zero successful results
	ErrorTypeEmptyResultSet ErrorType = "empty_result_set"
	// ErrorTypeInternal represents internal errors
	ErrorTypeInternal ErrorType = "internal"
)

// Error represents a structured error with additional context
type Error struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Cause      error     `json:"cause,omitempty"`
	Number     int       `json:"number,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// New creates a new Error
func New(errorType ErrorType, message string) *Error {
	return &Error{
		Type:      errorType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewInvalidInputError creates a new invalid input error for a work item
func NewInvalidInputError(number int) *Error {
	e := New(ErrorTypeInvalidInput, fmt.Sprintf("number must be positive, got %d", number))
	e.Number = number
	return e
}

// NewRemoteError creates a new remote error from a compute service response
func NewRemoteError(statusCode int, message string) *Error {
	e := New(ErrorTypeRemote, message)
	e.StatusCode = statusCode
	return e
}

// NewDecodeError creates a new decode error wrapping the underlying cause
func NewDecodeError(cause error) *Error {
	e := New(ErrorTypeDecode, "malformed compute service response")
	e.Cause = cause
	return e
}

// NewEmptyResultSetError creates a new empty result set error
func NewEmptyResultSetError() *Error {
	return New(ErrorTypeEmptyResultSet, "no successful results to aggregate")
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *Error {
	e := New(ErrorTypeInternal, message)
	e.Cause = cause
	return e
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithNumber attaches the work item the error belongs to
func (e *Error) WithNumber(number int) *Error {
	e.Number = number
	return e
}

// IsType checks whether err is an *Error of the given type
func IsType(err error, errorType ErrorType) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetType returns the error type, or ErrorTypeInternal for foreign errors
func GetType(err error) ErrorType {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}
