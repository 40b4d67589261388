package ports

import "context"

// ResourceWriter stores static resources under slash-separated paths
// relative to the root of the exported tree. Writing a path replaces any
// previous content; intermediate directories are created as needed.
type ResourceWriter interface {
	WriteResource(ctx context.Context, path string, data []byte) error
}
