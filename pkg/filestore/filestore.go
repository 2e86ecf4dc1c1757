// Package filestore provides an abstraction for blob storage operations.
//
// It defines a BlobStore interface that can be implemented by various
// storage backends (e.g., local filesystem, MinIO). The interface is
// designed to be injected into different components across project layers.
package filestore

import (
	"context"
	"io"
)

// BlobStore defines the interface for blob storage operations.
// Implementations must be safe for concurrent use.
//
// Names are opaque keys produced by the upload pipeline; implementations
// never interpret them beyond treating them as flat identifiers.
type BlobStore interface {
	// Write stores the full contents of r under the given name.
	// It fails with CodeCollisionDetected if a blob already exists at that
	// name and must not leave a partially written blob visible under the
	// final name on failure.
	Write(ctx context.Context, name string, r io.Reader) error

	// Open retrieves a blob's content by name.
	// The caller is responsible for closing the returned reader.
	// Fails with CodeBlobNotFound when no blob exists at that name.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete removes a blob by name. Deleting an absent blob is not an error.
	Delete(ctx context.Context, name string) error

	// Exists checks if a blob exists at the given name.
	Exists(ctx context.Context, name string) (bool, error)

	// List enumerates stored blob names, excluding any internal
	// bookkeeping entries.
	List(ctx context.Context) ([]string, error)
}
