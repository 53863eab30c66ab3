// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrTickerNotResolved = errors.New("no ticker recognized in input")
	ErrEmptyPayload      = errors.New("analysis payload is empty")
	ErrEntryNotFound     = errors.New("cache entry not found")
	ErrTimeout           = errors.New("operation timed out")
	ErrConnectionFailed  = errors.New("connection failed")
	ErrConfigInvalid     = errors.New("invalid configuration")
	ErrDatabaseError     = errors.New("database error")
)

// TransportError represents a network failure or timeout contacting a webhook.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error [%s]: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("transport error [%s]", e.Endpoint)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new TransportError.
func NewTransportError(endpoint string, err error) *TransportError {
	return &TransportError{
		Endpoint: endpoint,
		Err:      err,
	}
}

// NotFoundError represents a semantically empty response from the analysis
// backend: the call succeeded transport-wise but the ticker had no analysis.
type NotFoundError struct {
	Ticker  string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("not found [%s]: %s", e.Ticker, e.Message)
	}
	return fmt.Sprintf("not found [%s]", e.Ticker)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(ticker, message string) *NotFoundError {
	return &NotFoundError{
		Ticker:  ticker,
		Message: message,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
