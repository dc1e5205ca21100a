// Package errors provides a lightweight structured error type (RotatorError)
// for category-based classification across the rotation pipeline and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory classifies where in the pipeline an error originated.
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig ErrorCategory = "config"
	CategoryFolder ErrorCategory = "folder"
	CategoryOrder  ErrorCategory = "order"

	// Rotation state and listing errors
	CategoryImages ErrorCategory = "images"
	CategoryState  ErrorCategory = "state"

	// Desktop application errors
	CategoryHelper ErrorCategory = "helper"
	CategoryApply  ErrorCategory = "apply"

	// Infrastructure errors
	CategoryStorage  ErrorCategory = "storage"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// RotatorError is a structured error with category, retryability, and context
type RotatorError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for RotatorError
type ContextFields map[string]any

// Error implements the error interface
func (e *RotatorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *RotatorError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *RotatorError) WithContext(key string, value any) *RotatorError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new RotatorError
func New(category ErrorCategory, severity ErrorSeverity, message string) *RotatorError {
	return &RotatorError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new RotatorError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *RotatorError {
	return &RotatorError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// Retryable creates a new retryable RotatorError
func Retryable(category ErrorCategory, severity ErrorSeverity, message string) *RotatorError {
	return &RotatorError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: true,
	}
}

// WrapRetryable creates a new retryable RotatorError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *RotatorError {
	return &RotatorError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if re, ok := err.(*RotatorError); ok {
		return re.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if re, ok := err.(*RotatorError); ok {
		return re.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a RotatorError
func GetCategory(err error) ErrorCategory {
	if re, ok := err.(*RotatorError); ok {
		return re.Category
	}
	return CategoryInternal
}
