// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/catalog"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/storage"
)

// CatalogSeed describes the catalog document to publish on first startup.
type CatalogSeed struct {
	Key  string // object key within storage
	Path string // local file to publish
}

// Validate checks that the seed configuration is usable.
func (c *CatalogSeed) Validate() error {
	if c.Key == "" {
		return errors.New("catalog key is required")
	}
	if c.Path == "" {
		return errors.New("catalog seed path is required")
	}
	return nil
}

// EnsureCatalog publishes the seed file when storage has no catalog yet. It
// is idempotent and safe to call on every startup.
//
// A nil seed or an empty Path skips seeding. A read-only storage backend is
// logged and skipped. The seed must decode to at least one product.
func EnsureCatalog(ctx context.Context, store storage.Storage, seed *CatalogSeed, logger *slog.Logger) error {
	if seed == nil || seed.Path == "" {
		logger.Debug("bootstrap: catalog seeding disabled", "hint", "set CATALOG_SEED_PATH to publish a catalog on first startup")
		return nil
	}
	if err := seed.Validate(); err != nil {
		return fmt.Errorf("invalid catalog seed: %w", err)
	}

	exists, err := store.Exists(ctx, seed.Key)
	if err != nil {
		return fmt.Errorf("failed to check for catalog: %w", err)
	}
	if exists {
		logger.Debug("bootstrap: catalog already published", "key", seed.Key)
		return nil
	}

	data, err := os.ReadFile(seed.Path)
	if err != nil {
		return fmt.Errorf("failed to read catalog seed: %w", err)
	}
	products, skipped, err := catalog.Decode(data)
	if err != nil {
		return fmt.Errorf("catalog seed %s: %w", seed.Path, err)
	}
	if len(products) == 0 {
		return fmt.Errorf("catalog seed %s has no valid products", seed.Path)
	}

	url, err := store.Put(ctx, seed.Key, bytes.NewReader(data), "application/json")
	if errors.Is(err, storage.ErrReadOnly) {
		logger.Warn("bootstrap: storage is read-only, catalog not seeded", "key", seed.Key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to publish catalog seed: %w", err)
	}

	logger.Info("bootstrap: catalog published",
		"key", seed.Key,
		"url", url,
		"products", len(products),
		"skipped", len(skipped),
	)
	return nil
}
