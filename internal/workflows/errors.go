package workflows

import (
	"fmt"
)

// Error severity levels for pipeline errors
type ErrorSeverity string

const (
	// ErrorSeverityCritical indicates the pipeline must fail
	ErrorSeverityCritical ErrorSeverity = "critical"
	// ErrorSeverityHigh indicates a major issue but the pipeline can continue
	ErrorSeverityHigh ErrorSeverity = "high"
	// ErrorSeverityLow indicates a minor issue that doesn't affect main functionality
	ErrorSeverityLow ErrorSeverity = "low"
)

// PipelineError represents a structured error in the pipeline
type PipelineError struct {
	Phase    string        // The phase that failed (e.g., "database_design")
	Severity ErrorSeverity // How severe the error is
	Err      error         // The underlying error
	Context  string        // Additional context about the error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s failed: %s (%s)", e.Phase, e.Err.Error(), e.Context)
	}
	return fmt.Sprintf("%s failed: %s", e.Phase, e.Err.Error())
}

// Unwrap allows errors.Is and errors.As to work with PipelineError
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError creates a new pipeline error with context
func NewPipelineError(phase string, severity ErrorSeverity, err error, context string) *PipelineError {
	return &PipelineError{
		Phase:    phase,
		Severity: severity,
		Err:      err,
		Context:  context,
	}
}

// WrapActivityError wraps an activity error with phase context.
func WrapActivityError(phase string, err error) error {
	return fmt.Errorf("%s: %w", phase, err)
}

// FormatErrorForResult formats an error for inclusion in result.Errors.
func FormatErrorForResult(phase string, err error) string {
	return fmt.Sprintf("%s: %v", phase, err)
}

// Error handling pattern for pipeline phases:
//
// CRITICAL (Propagate & Record): a required phase fails after retries.
// Every later phase depends on its output, so record the error in
// result.Errors and return it to fail the workflow.
//
// HIGH (Record but Continue): an optional phase fails. The pipeline can
// still deliver without it; record the error and keep going. Only
// frontend_enhancement is optional.
//
// LOW (Log as Warning): best-effort operations such as event
// publication. Log and move on.
