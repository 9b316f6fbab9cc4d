package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeFormat  ErrorType = "FORMAT"
	ErrTypeParsing ErrorType = "PARSING"
	ErrTypeRender  ErrorType = "RENDER"
	ErrTypeStorage ErrorType = "STORAGE"
	ErrTypeExport  ErrorType = "EXPORT"
	ErrTypeConfig  ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// TypeOf returns the ErrorType of the first AppError in err's chain.
// Errors that carry no AppError are reported as STORAGE, since every
// untyped failure in the pipeline comes from reading or writing files.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrTypeStorage
}

// Helper functions for common error types

// NewFormatError creates a capture-format error
func NewFormatError(message string, cause error) *AppError {
	return NewAppError(ErrTypeFormat, message, cause)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewRenderError creates a chart rendering error
func NewRenderError(message string, cause error) *AppError {
	return NewAppError(ErrTypeRender, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewExportError creates an export error
func NewExportError(message string, cause error) *AppError {
	return NewAppError(ErrTypeExport, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
