// Package artifacts defines the storage port for execution outputs and
// reproducibility packages.
package artifacts

import "context"

// Object describes a stored artifact.
type Object struct {
	Key         string
	Size        int64
	ContentType string
}

// ArtifactConnector is an interface for interacting with artifact storage
type ArtifactConnector interface {
	// Upload stores data under key, replacing any previous object.
	Upload(ctx context.Context, key string, data []byte) (*Object, error)

	// Download retrieves the object stored under key.
	Download(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object stored under key. Missing objects are ignored.
	Delete(ctx context.Context, key string) error
}
