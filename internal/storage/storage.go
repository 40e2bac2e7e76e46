package storage

import (
	"context"
)

// ArtifactStorage defines the interface for persisting generation diagnostics.
// When a plan exhausts its generation attempts, the last raw model output is
// kept as an artifact so the failure can be inspected later.
type ArtifactStorage interface {
	// PutArtifact stores body under objectKey with the given content type and
	// returns the object key actually written.
	PutArtifact(ctx context.Context, objectKey string, body []byte, contentType string) (string, error)

	// DeleteArtifact removes a stored artifact.
	DeleteArtifact(ctx context.Context, objectKey string) error
}
