// Package core holds the error and job state types shared by every layer.
package core

import (
	"fmt"
)

// AnalysisError represents a structured error with category and details
type AnalysisError struct {
	Category ErrorCategory
	Code     string                 // Machine-readable code: malformed_document, fetch_failed, etc.
	Message  string                 // Human-readable message
	Details  map[string]interface{} // Additional context
	Cause    error                  // Underlying error
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AnalysisError with the same code, so
// copies made by WithCause/WithMessage still match the predefined values.
func (e *AnalysisError) Is(target error) bool {
	t, ok := target.(*AnalysisError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithCause returns a copy of the error with the given cause
func (e *AnalysisError) WithCause(cause error) *AnalysisError {
	return &AnalysisError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  e.Details,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message
func (e *AnalysisError) WithMessage(msg string) *AnalysisError {
	return &AnalysisError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Details:  e.Details,
		Cause:    e.Cause,
	}
}

// WithDetails returns a copy of the error with additional details
func (e *AnalysisError) WithDetails(details map[string]interface{}) *AnalysisError {
	merged := make(map[string]interface{})
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &AnalysisError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  merged,
		Cause:    e.Cause,
	}
}

// Predefined errors
var (
	// Document errors
	ErrMalformedDocument = &AnalysisError{
		Category: ErrCategoryDocument,
		Code:     "malformed_document",
		Message:  "Malformed XML",
	}

	// Input errors
	ErrMissingInput = &AnalysisError{
		Category: ErrCategoryInput,
		Code:     "missing_input",
		Message:  "image_url and xml_url are required",
	}
	ErrInvalidImage = &AnalysisError{
		Category: ErrCategoryInput,
		Code:     "invalid_image",
		Message:  "Invalid image format. Please provide a valid base64 encoded image (JPEG, PNG, GIF, etc.)",
	}

	// Fetch errors
	ErrFetchFailed = &AnalysisError{
		Category: ErrCategoryFetch,
		Code:     "fetch_failed",
		Message:  "could not fetch resource",
	}

	// Store errors
	ErrJobNotFound = &AnalysisError{
		Category: ErrCategoryStore,
		Code:     "job_not_found",
		Message:  "kickoff_id not found",
	}

	// Auth errors
	ErrUnauthenticated = &AnalysisError{
		Category: ErrCategoryAuth,
		Code:     "unauthenticated",
		Message:  "Missing or invalid Authorization header",
	}
	ErrForbidden = &AnalysisError{
		Category: ErrCategoryAuth,
		Code:     "forbidden",
		Message:  "Invalid token",
	}

	// Config errors
	ErrInvalidConfig = &AnalysisError{
		Category: ErrCategoryConfig,
		Code:     "invalid_config",
		Message:  "invalid configuration",
	}
)
