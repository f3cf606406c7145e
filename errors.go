package csveda

import (
	"errors"
	"fmt"
	"strings"
)

// Standard error messages and error creation functions for consistency
var (
	// ErrFileNotFound indicates file not found
	ErrFileNotFound = errors.New("csveda: file not found")

	// ErrPermissionDenied indicates permission denied
	ErrPermissionDenied = errors.New("csveda: permission denied")

	// ErrEmptyData indicates that the data source contains no records
	ErrEmptyData = errors.New("csveda: empty data source")

	// ErrInvalidData indicates malformed or invalid data
	ErrInvalidData = errors.New("csveda: invalid data format")

	// ErrUnsupportedFormat indicates an unsupported file format
	ErrUnsupportedFormat = errors.New("csveda: unsupported file format")

	// ErrCategoryNotFound indicates that a required category is absent from a column
	ErrCategoryNotFound = errors.New("csveda: category not found")

	// ErrInvalidConfig indicates the builder was given unusable settings
	ErrInvalidConfig = errors.New("csveda: invalid configuration")
)

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	FilePath  string
	Column    string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, filePath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		FilePath:  filePath,
	}
}

// WithColumn adds column context to the error
func (ec *ErrorContext) WithColumn(column string) *ErrorContext {
	ec.Column = column
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	parts := []string{ec.Operation + " failed"}

	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}
	if ec.Column != "" {
		parts = append(parts, "column: "+ec.Column)
	}
	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return errors.New(context)
}
