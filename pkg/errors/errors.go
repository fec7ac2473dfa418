// Package errors provides categorized error types for the txnviz tool.
//
// Every error that crosses a package boundary is a *VisualizerError carrying
// a category, a machine-readable code, an optional suggestion for the user,
// and a stack trace captured at creation time. The CLI layer maps categories
// to exit codes and help text.
package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryFile          ErrorCategory = "file"
	CategoryParse         ErrorCategory = "parse"
	CategoryValidation    ErrorCategory = "validation"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryAggregation   ErrorCategory = "aggregation"
	CategoryInternal      ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories
type ErrorCode string

const (
	// File errors
	CodeFileNotFound   ErrorCode = "file_not_found"
	CodeFilePermission ErrorCode = "file_permission"
	CodeFileCorrupted  ErrorCode = "file_corrupted"
	CodeDirectoryError ErrorCode = "directory_error"

	// Parse errors
	CodeInvalidFormat ErrorCode = "invalid_format"
	CodeMissingColumn ErrorCode = "missing_column"
	CodeInvalidData   ErrorCode = "invalid_data"
	CodeEncodingError ErrorCode = "encoding_error"

	// Validation errors
	CodeInvalidAmount ErrorCode = "invalid_amount"
	CodeInvalidDate   ErrorCode = "invalid_date"
	CodeMissingField  ErrorCode = "missing_field"
	CodeOutOfRange    ErrorCode = "out_of_range"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "invalid_config"
	CodeMissingConfig ErrorCode = "missing_config"

	// Aggregation errors
	CodeInvalidThreshold ErrorCode = "invalid_threshold"
	CodeProcessingError  ErrorCode = "processing_error"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// VisualizerError is the base error type for all application errors
type VisualizerError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Context provides additional information about the error
type Context map[string]interface{}

// Error implements the error interface
func (e *VisualizerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error
func (e *VisualizerError) Unwrap() error {
	return e.Cause
}

// GetExitCode returns the process exit code appropriate for this error
func (e *VisualizerError) GetExitCode() int {
	switch e.Category {
	case CategoryFile:
		return 2
	case CategoryParse:
		return 3
	case CategoryValidation:
		return 4
	case CategoryConfiguration:
		return 5
	case CategoryAggregation:
		return 6
	default:
		return 1
	}
}

// WithContext adds a key-value pair to the error context
func (e *VisualizerError) WithContext(key string, value interface{}) *VisualizerError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion attaches a user-facing suggestion to the error
func (e *VisualizerError) WithSuggestion(suggestion string) *VisualizerError {
	e.Suggestion = suggestion
	return e
}

// New creates a new VisualizerError with a captured stack trace
func New(category ErrorCategory, code ErrorCode, message string) *VisualizerError {
	return &VisualizerError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: captureStackTrace(),
	}
}

// Wrap wraps an existing error in a VisualizerError
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *VisualizerError {
	if err == nil {
		return nil
	}
	return &VisualizerError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: captureStackTrace(),
	}
}

// FileError creates a file-related error with path context
func FileError(code ErrorCode, path string, err error) *VisualizerError {
	var message string
	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("file not found: %s", path)
	case CodeFilePermission:
		message = fmt.Sprintf("permission denied: %s", path)
	case CodeFileCorrupted:
		message = fmt.Sprintf("file appears to be corrupted: %s", path)
	default:
		message = fmt.Sprintf("file error: %s", path)
	}

	e := Wrap(err, CategoryFile, code, message)
	if e == nil {
		e = New(CategoryFile, code, message)
	}
	return e.WithContext("path", path)
}

// ParseError creates a parse error with location context
func ParseError(code ErrorCode, file string, line int, column string, value string, err error) *VisualizerError {
	message := fmt.Sprintf("failed to parse %s", column)
	if value != "" {
		message = fmt.Sprintf("failed to parse %s value '%s'", column, value)
	}

	e := Wrap(err, CategoryParse, code, message)
	if e == nil {
		e = New(CategoryParse, code, message)
	}
	if file != "" {
		e = e.WithContext("file", file)
	}
	if line > 0 {
		e = e.WithContext("line", line)
	}
	return e
}

// ValidationError creates a validation error for a specific field
func ValidationError(code ErrorCode, field string, value interface{}, err error) *VisualizerError {
	message := fmt.Sprintf("validation failed for %s", field)

	e := Wrap(err, CategoryValidation, code, message)
	if e == nil {
		e = New(CategoryValidation, code, message)
	}
	return e.WithContext("field", field).WithContext("value", value)
}

// ConfigurationError creates a configuration error for a specific setting
func ConfigurationError(code ErrorCode, setting string, value interface{}, err error) *VisualizerError {
	message := fmt.Sprintf("invalid configuration for %s", setting)

	e := Wrap(err, CategoryConfiguration, code, message)
	if e == nil {
		e = New(CategoryConfiguration, code, message)
	}
	return e.WithContext("setting", setting).WithContext("value", value)
}

// AggregationError creates an error for a failed aggregation operation
func AggregationError(code ErrorCode, operation string, err error) *VisualizerError {
	message := fmt.Sprintf("aggregation failed during %s", operation)

	e := Wrap(err, CategoryAggregation, code, message)
	if e == nil {
		e = New(CategoryAggregation, code, message)
	}
	return e.WithContext("operation", operation)
}

// InternalError creates an error for unexpected internal failures
func InternalError(code ErrorCode, operation string, err error) *VisualizerError {
	message := fmt.Sprintf("internal error during %s", operation)

	e := Wrap(err, CategoryInternal, code, message)
	if e == nil {
		e = New(CategoryInternal, code, message)
	}
	return e.WithContext("operation", operation).
		WithSuggestion("This is likely a bug; please report it with the command you ran")
}

// ErrorSummary aggregates multiple errors from a batch operation
type ErrorSummary struct {
	Errors []*VisualizerError `json:"errors"`
}

// NewErrorSummary creates a summary from a slice of errors
func NewErrorSummary(errs []*VisualizerError) *ErrorSummary {
	return &ErrorSummary{Errors: errs}
}

// Error implements the error interface
func (es *ErrorSummary) Error() string {
	if len(es.Errors) == 0 {
		return "no errors"
	}
	if len(es.Errors) == 1 {
		return es.Errors[0].Error()
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("%d errors occurred:", len(es.Errors)))
	for _, err := range es.Errors {
		lines = append(lines, "  - "+err.Error())
	}
	return strings.Join(lines, "\n")
}

// HasCategory reports whether any error in the summary has the given category
func (es *ErrorSummary) HasCategory(category ErrorCategory) bool {
	for _, err := range es.Errors {
		if err.Category == category {
			return true
		}
	}
	return false
}

// GetExitCode returns the exit code of the most severe error in the summary
func (es *ErrorSummary) GetExitCode() int {
	code := 0
	for _, err := range es.Errors {
		if c := err.GetExitCode(); c > code {
			code = c
		}
	}
	return code
}

// IsVisualizerError reports whether err is (or wraps) a *VisualizerError
func IsVisualizerError(err error) bool {
	_, ok := AsVisualizerError(err)
	return ok
}

// AsVisualizerError extracts a *VisualizerError from err's chain
func AsVisualizerError(err error) (*VisualizerError, bool) {
	var ve *VisualizerError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// WrapIfNeeded wraps err unless it already is a VisualizerError
func WrapIfNeeded(err error, category ErrorCategory, code ErrorCode, message string) *VisualizerError {
	if err == nil {
		return nil
	}
	if ve, ok := AsVisualizerError(err); ok {
		return ve
	}
	return Wrap(err, category, code, message)
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func captureStackTrace() errors.StackTrace {
	if st, ok := errors.New("").(stackTracer); ok {
		trace := st.StackTrace()
		if len(trace) > 2 {
			return trace[2:]
		}
		return trace
	}
	return nil
}
