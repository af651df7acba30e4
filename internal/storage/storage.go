// Package storage reads and publishes storefront documents such as the
// product catalog. Backends are the local filesystem, an S3-compatible
// bucket (Cloudflare R2) and a read-only HTTP origin.
package storage

import (
	"context"
	"io"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal"
)

// Storage defines the interface for document storage operations.
type Storage interface {
	// Put stores a document and returns its public URL.
	Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error)

	// Get retrieves a document by its key. The caller must close the
	// returned reader. Missing documents yield an error for which
	// IsNotFound is true.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a document. Deleting a missing document is not an
	// error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL of a stored document.
	URL(key string) string

	// Exists checks whether a document exists at key.
	Exists(ctx context.Context, key string) (bool, error)
}

// NewStorage creates a Storage implementation based on configuration.
func NewStorage(cfg internal.StorageConfig) (Storage, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalStorage(cfg.LocalPath, cfg.LocalURL)
	case "r2":
		return NewR2Storage(R2Config{
			AccountID:   cfg.R2AccountID,
			AccessKeyID: cfg.R2AccessKeyID,
			SecretKey:   cfg.R2SecretKey,
			BucketName:  cfg.R2BucketName,
			PublicURL:   cfg.R2PublicURL,
		})
	case "http":
		return NewHTTPStorage(cfg.HTTPBaseURL, nil)
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}
