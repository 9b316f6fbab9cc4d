package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "format error type", errType: ErrTypeFormat, expected: "FORMAT"},
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "render error type", errType: ErrTypeRender, expected: "RENDER"},
		{name: "storage error type", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "export error type", errType: ErrTypeExport, expected: "EXPORT"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeFormat,
				Message: "header marker not found",
			},
			wantMessage: "[FORMAT] header marker not found",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeParsing,
				Message: "no usable rows",
				Cause:   fmt.Errorf("all timestamps non-numeric"),
			},
			wantMessage: "[PARSING] no usable rows: all timestamps non-numeric",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := NewFormatError("unknown layout", sentinel)

	assert.True(t, errors.Is(err, sentinel))

	wrapped := fmt.Errorf("detect %s: %w", "a.csv", err)
	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeFormat, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeParsing, Message: "bad row"}
	err.WithContext("row", 12).WithContext("file", "SINE_10kHz.csv")

	require.NotNil(t, err.Context)
	assert.Equal(t, 12, err.Context["row"])
	assert.Equal(t, "SINE_10kHz.csv", err.Context["file"])
}

func TestConstructors(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		name string
		err  *AppError
		want ErrorType
	}{
		{"format", NewFormatError("m", cause), ErrTypeFormat},
		{"parsing", NewParsingError("m", cause), ErrTypeParsing},
		{"render", NewRenderError("m", cause), ErrTypeRender},
		{"storage", NewStorageError("m", cause), ErrTypeStorage},
		{"export", NewExportError("m", cause), ErrTypeExport},
		{"config", NewConfigError("m", cause), ErrTypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Type)
			assert.Equal(t, "m", tt.err.Message)
			assert.Same(t, cause, tt.err.Cause)
			assert.NotNil(t, tt.err.Context)
		})
	}
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrTypeParsing, TypeOf(fmt.Errorf("wrap: %w", NewParsingError("x", nil))))
	assert.Equal(t, ErrTypeStorage, TypeOf(errors.New("open: no such file")))
}
