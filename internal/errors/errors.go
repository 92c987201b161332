// Package errors provides shared error types for failures this server
// detects locally, before any request reaches the Databricks API.
// Upstream failures are represented separately by databricks.APIError.
package errors

import "fmt"

// ValidationError indicates invalid or conflicting tool parameters.
type ValidationError struct {
	Field   string // parameter name that failed validation
	Value   string // the offending value (may be empty for secrets)
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsValidation returns true if the error is a ValidationError.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
