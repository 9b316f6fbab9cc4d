package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved, absolute directories used by a run
type Paths struct {
	BaseDir   string
	InputDir  string
	OutputDir string
	LogsDir   string
	Pattern   string
}

// ResolvePaths makes every configured directory absolute. Relative paths
// are resolved against baseDir, or the working directory when baseDir is empty.
func ResolvePaths(cfg PathsConfig, baseDir string) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(baseDir, p)
	}

	logsDir := cfg.LogsDir
	if logsDir != "" {
		logsDir = abs(logsDir)
	}

	return &Paths{
		BaseDir:   baseDir,
		InputDir:  abs(cfg.InputDir),
		OutputDir: abs(cfg.OutputDir),
		LogsDir:   logsDir,
		Pattern:   cfg.Pattern,
	}, nil
}

// EnsureDirectories creates the output and logs directories if they don't exist.
// The input directory is never created.
func (p *Paths) EnsureDirectories() error {
	directories := []string{p.OutputDir}
	if p.LogsDir != "" {
		directories = append(directories, p.LogsDir)
	}

	logger := slog.Default()
	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		logger.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// OutputFile returns the path of name inside the output directory
func (p *Paths) OutputFile(name string) string {
	return filepath.Join(p.OutputDir, name)
}

// LogPathResolution logs every resolved path at debug level
func (p *Paths) LogPathResolution() {
	slog.Default().Debug("Resolved paths",
		slog.Group("paths",
			slog.String("base", p.BaseDir),
			slog.String("input", p.InputDir),
			slog.String("output", p.OutputDir),
			slog.String("logs", p.LogsDir),
			slog.String("pattern", p.Pattern)))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
