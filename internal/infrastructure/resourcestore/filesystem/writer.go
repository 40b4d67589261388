// Package filesystem writes the exported resource tree to a local directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer implements ports.ResourceWriter on top of a base directory.
type Writer struct {
	root string
}

// NewWriter creates a writer rooted at basePath.
func NewWriter(basePath string) (*Writer, error) {
	if basePath == "" {
		return nil, errors.New("base path is required")
	}
	return &Writer{root: basePath}, nil
}

// Root returns the base directory.
func (w *Writer) Root() string {
	return w.root
}

// WriteResource writes data to path below the root, creating directories as
// needed and truncating any existing file.
func (w *Writer) WriteResource(_ context.Context, path string, data []byte) error {
	target, err := w.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("writing resource %s: %w", path, err)
	}

	return nil
}

// resolve maps a resource path to a file path, refusing paths that would
// escape the root.
func (w *Writer) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid resource path %q", path)
	}
	return filepath.Join(w.root, clean), nil
}
