package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"boxscorecli/internal/config"
)

// Manager resolves input and output locations against the configured
// pipeline directories
type Manager struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewManager creates a new file manager instance
func NewManager(paths *config.Paths, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{paths: paths, logger: logger}
}

// FileExists checks if a file exists at the given path
func (m *Manager) FileExists(path string) bool {
	fullPath := m.InputPath(path)
	info, err := os.Stat(fullPath)
	exists := err == nil && !info.IsDir()

	m.logger.Debug("FileExists check",
		slog.String("path", path),
		slog.String("full_path", fullPath),
		slog.Bool("exists", exists))

	return exists
}

// InputPath resolves a relative input path against the input directory
func (m *Manager) InputPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return m.paths.GetInputPath(path)
}

// OutputPath returns where an export should be written. An empty path uses
// the default file name in the output directory; a directory gets the default
// file name appended.
func (m *Manager) OutputPath(path, defaultName string) string {
	if path == "" {
		return m.paths.GetOutputPath(defaultName)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, defaultName)
	}
	return path
}

// EnsureDirectory creates a directory if it doesn't exist
func (m *Manager) EnsureDirectory(path string) error {
	m.logger.Debug("Ensuring directory exists", slog.String("path", path))

	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
