package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrValidation      = errors.New("validation error")
	ErrMalformedSource = errors.New("malformed dictionary source")
	ErrNotInitialized  = errors.New("not initialized")
	ErrClosed          = errors.New("closed")
	ErrUnknownMethod   = errors.New("unknown method")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// SourceError reports where a dictionary source stopped parsing.
// Line is 1-based; zero means the position is unknown.
type SourceError struct {
	Format string
	Line   int
	Reason string
}

func (e *SourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s source: line %d: %s", e.Format, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s source: %s", e.Format, e.Reason)
}

func (e *SourceError) Unwrap() error { return ErrMalformedSource }

// NewSourceError creates a SourceError for the given format and line.
func NewSourceError(format string, line int, reason string) *SourceError {
	return &SourceError{Format: format, Line: line, Reason: reason}
}
