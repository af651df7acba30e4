// Package state persists per-visitor storefront state: carts, recently
// viewed lists, accounts and orders. Values are opaque bytes under string
// keys; backends differ only in where the bytes live.
package state

//go:generate mockgen -source=store.go -destination=mock_store.go -package=state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("state: key not found")

// Store is a key-value store with optional expiry.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A ttl of zero keeps the value until it is
	// deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX stores value under key only when the key is absent or expired.
	// It reports whether the value was stored.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Purger is implemented by backends that do not expire keys on their own.
type Purger interface {
	// Purge deletes every key that expired before now and returns how many
	// were removed.
	Purge(ctx context.Context, now time.Time) (int64, error)
}

// Keys builds namespaced keys.
type Keys struct {
	Prefix string
}

// Key joins the prefix and parts with colons.
func (k Keys) Key(parts ...string) string {
	if k.Prefix == "" {
		return strings.Join(parts, ":")
	}
	return k.Prefix + ":" + strings.Join(parts, ":")
}

// SetJSONNX encodes value and stores it under key unless the key exists.
func SetJSONNX(ctx context.Context, s Store, key string, value any, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", key, err)
	}
	return s.SetNX(ctx, key, data, ttl)
}

// GetJSON loads and decodes the value under key. found is false when the key
// does not exist.
func GetJSON[T any](ctx context.Context, s Store, key string) (value T, found bool, err error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return value, false, nil
	}
	if err != nil {
		return value, false, err
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return value, true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data, ttl)
}
