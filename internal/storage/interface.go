package storage

import (
	"context"
	"io"
)

// ObjectStorage defines the interface for image object storage.
// Records reference stored images by URL; nothing reads them back or removes
// them through the service, so the surface is write-then-link only.
type ObjectStorage interface {
	// Upload uploads an object to storage
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// GetURL returns the URL for accessing an object
	GetURL(key string) string
}
