package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type runIDKey struct{}

// NewRunID returns a fresh batch run identifier (UUID v4)
func NewRunID() string {
	return uuid.New().String()
}

// WithRunID attaches a run id to ctx
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the run id carried by ctx, or ""
func RunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// EnsureRunID returns ctx with a run id, generating one if it has none
func EnsureRunID(ctx context.Context) context.Context {
	if RunID(ctx) == "" {
		return WithRunID(ctx, NewRunID())
	}
	return ctx
}

// WithComponent creates a logger with a component field
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", component)
}

// WithError creates a logger with an error field
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With("error", err.Error())
}
