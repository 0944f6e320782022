package profile

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is classification of load failures
var (
	ErrMissingRequiredSource = errors.New("missing required source")
	ErrMalformedSource       = errors.New("malformed source")
	ErrValidation            = errors.New("validation failed")
)

// MissingSourceError is returned when a required document or folder does not exist
type MissingSourceError struct {
	Document string
	Path     string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("missing required source %s: %s not found", e.Document, e.Path)
}

// Is matches ErrMissingRequiredSource
func (e *MissingSourceError) Is(target error) bool {
	return target == ErrMissingRequiredSource
}

// MalformedSourceError is returned when a document exists but cannot be read,
// parsed or does not have the expected structure
type MalformedSourceError struct {
	Document string
	Path     string
	Message  string
	Cause    error
}

func (e *MalformedSourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed source %s (%s): %s: %v", e.Document, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed source %s (%s): %s", e.Document, e.Path, e.Message)
}

func (e *MalformedSourceError) Unwrap() error {
	return e.Cause
}

// Is matches ErrMalformedSource
func (e *MalformedSourceError) Is(target error) bool {
	return target == ErrMalformedSource
}

// FieldError is a single invalid field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned when parsed data violates field constraints,
// e.g. a missing contact name or an invalid email
type ValidationError struct {
	Document string
	Fields   []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("invalid %s: %s", e.Document, strings.Join(parts, "; "))
}

// Is matches ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
