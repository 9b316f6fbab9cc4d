package files

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Manager provides file management operations rooted at an output directory
type Manager struct {
	root   string
	logger *slog.Logger
}

// NewManager creates a new file manager instance. Relative paths passed to
// its methods are resolved against root.
func NewManager(root string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{root: root, logger: logger}
}

// Root returns the directory the manager writes into
func (m *Manager) Root() string {
	return m.root
}

func (m *Manager) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.root, path)
}

// FileExists checks if a file exists at the given path
func (m *Manager) FileExists(path string) bool {
	_, err := os.Stat(m.resolvePath(path))
	return err == nil
}

// EnsureDirectory creates a directory with all parent directories
func (m *Manager) EnsureDirectory(path string) error {
	fullPath := m.resolvePath(path)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
	}
	return nil
}

// WriteFileAtomic streams write's output into a temporary file next to path
// and renames it into place once write succeeds. On any failure the
// temporary file is removed and path is left untouched.
func (m *Manager) WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	fullPath := m.resolvePath(path)
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", fullPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", fullPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", fullPath, err)
	}
	if err = os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", fullPath, err)
	}
	if err = os.Rename(tmpPath, fullPath); err != nil {
		return fmt.Errorf("failed to rename into %s: %w", fullPath, err)
	}

	m.logger.Debug("File written", slog.String("path", fullPath))
	return nil
}

// WriteFile writes data to path atomically
func (m *Manager) WriteFile(path string, data []byte) error {
	return m.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// ListFiles returns all file names in a directory (non-recursive)
func (m *Manager) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(m.resolvePath(dir))
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
