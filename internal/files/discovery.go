package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. Relative directories
// passed to its methods are resolved against basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// FindCaptureFiles returns the regular files in dir whose names match the
// glob pattern, sorted by name so batch order is stable across runs.
// Subdirectories are not searched.
func (d *Discovery) FindCaptureFiles(dir, pattern string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ok, _ := filepath.Match(pattern, name); !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// Paths returns the Path of every file, in order
func Paths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}
