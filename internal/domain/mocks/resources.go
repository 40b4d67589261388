package mocks

import "context"

// ResourceWriter is a mock implementation of ports.ResourceWriter that keeps
// written resources in memory.
type ResourceWriter struct {
	Resources map[string][]byte
	Writes    []string // Paths in write order
	Err       error
}

// NewResourceWriter creates a new mock ResourceWriter.
func NewResourceWriter() *ResourceWriter {
	return &ResourceWriter{
		Resources: make(map[string][]byte),
	}
}

// WriteResource stores data under path.
func (m *ResourceWriter) WriteResource(_ context.Context, path string, data []byte) error {
	if m.Err != nil {
		return m.Err
	}
	m.Resources[path] = append([]byte(nil), data...)
	m.Writes = append(m.Writes, path)
	return nil
}
