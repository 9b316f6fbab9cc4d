package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"scopecli/internal/config"
)

// OpenLogger builds the run logger described by cfg and installs it as the
// slog default. Console output goes to console; file output appends to
// cfg.FilePath. The returned func closes the log file, if one was opened.
func OpenLogger(cfg config.LoggingConfig, console io.Writer) (*slog.Logger, func() error, error) {
	w := console
	closeLog := func() error { return nil }

	switch strings.ToLower(cfg.Output) {
	case "file", "both":
		file, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, nil, err
		}
		closeLog = file.Close
		w = file
		if strings.EqualFold(cfg.Output, "both") {
			w = io.MultiWriter(console, file)
		}
	}

	logger := NewLogger(cfg, w)
	slog.SetDefault(logger)
	return logger, closeLog, nil
}

// NewLogger builds a JSON logger writing to w. Records logged with a run
// context carry run_id.
func NewLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	return slog.New(runHandler{slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: cfg.Development,
		Level:     parseLogLevel(cfg.Level),
	})})
}

type runHandler struct {
	slog.Handler
}

func (h runHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RunID(ctx); id != "" {
		r.AddAttrs(slog.String("run_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h runHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return runHandler{h.Handler.WithAttrs(attrs)}
}

func (h runHandler) WithGroup(name string) slog.Handler {
	return runHandler{h.Handler.WithGroup(name)}
}

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// parseLogLevel maps a configured level name to slog; unknown names are info.
func parseLogLevel(level string) slog.Level {
	if l, ok := logLevels[strings.ToLower(level)]; ok {
		return l
	}
	return slog.LevelInfo
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return file, nil
}
