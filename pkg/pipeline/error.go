// pkg/pipeline/error.go
package pipeline

import (
	"errors"
	"fmt"

	"github.com/dataset-tools/insights/pkg/loader"
)

// ErrorCategory classifies where in the pipeline a failure happened
type ErrorCategory int

const (
	// Error categories with increasing severity
	ErrorCategoryNone ErrorCategory = iota
	ErrorCategoryPlot
	ErrorCategoryReport
	ErrorCategoryAnalysis
	ErrorCategoryLoad
)

// String returns a string representation of the error category
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryNone:
		return "None"
	case ErrorCategoryPlot:
		return "Plot"
	case ErrorCategoryReport:
		return "Report"
	case ErrorCategoryAnalysis:
		return "Analysis"
	case ErrorCategoryLoad:
		return "Load"
	default:
		return fmt.Sprintf("Unknown(%d)", int(ec))
	}
}

// RunError wraps a pipeline failure with its category and stage
type RunError struct {
	Category ErrorCategory
	Stage    string
	Err      error
}

// Error implements the error interface
func (e *RunError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error
func (e *RunError) Unwrap() error {
	return e.Err
}

// newRunError wraps an error with category and stage information
func newRunError(category ErrorCategory, stage string, err error) *RunError {
	return &RunError{Category: category, Stage: stage, Err: err}
}

// IsUserInputError reports whether the failure is the user's input
// rather than an internal fault: a missing file, an unparseable file,
// or an empty dataset
func IsUserInputError(err error) bool {
	return errors.Is(err, loader.ErrFileNotFound) ||
		errors.Is(err, loader.ErrParse) ||
		errors.Is(err, loader.ErrEmptyDataset)
}
