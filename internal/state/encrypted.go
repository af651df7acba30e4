package state

import (
	"context"
	"fmt"
	"time"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/crypto"
)

// EncryptedStore encrypts values before they reach the wrapped backend.
// Keys are stored in the clear so TTLs and purging keep working.
type EncryptedStore struct {
	inner Store
	enc   crypto.Encryptor
}

// NewEncryptedStore wraps inner so every value is sealed with enc.
func NewEncryptedStore(inner Store, enc crypto.Encryptor) *EncryptedStore {
	return &EncryptedStore{inner: inner, enc: enc}
}

func (s *EncryptedStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	plain, err := s.enc.Decrypt(data)
	if err != nil {
		return nil, fmt.Errorf("state: failed to decrypt %s: %w", key, err)
	}
	return plain, nil
}

func (s *EncryptedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	sealed, err := s.enc.Encrypt(value)
	if err != nil {
		return fmt.Errorf("state: failed to encrypt %s: %w", key, err)
	}
	return s.inner.Set(ctx, key, sealed, ttl)
}

func (s *EncryptedStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	sealed, err := s.enc.Encrypt(value)
	if err != nil {
		return false, fmt.Errorf("state: failed to encrypt %s: %w", key, err)
	}
	return s.inner.SetNX(ctx, key, sealed, ttl)
}

func (s *EncryptedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *EncryptedStore) Close() error {
	return s.inner.Close()
}

// Unwrap returns the wrapped backend.
func (s *EncryptedStore) Unwrap() Store {
	return s.inner
}

// AsPurger returns the Purger behind s, looking through wrappers. Backends
// that expire keys on their own report false.
func AsPurger(s Store) (Purger, bool) {
	for {
		if p, ok := s.(Purger); ok {
			return p, true
		}
		w, ok := s.(interface{ Unwrap() Store })
		if !ok {
			return nil, false
		}
		s = w.Unwrap()
	}
}
