package state

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/crypto"
)

func TestNewStore(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	t.Run("memory", func(t *testing.T) {
		s, err := NewStore(ctx, internal.StateConfig{Driver: "memory"}, logger)
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, s)
	})

	t.Run("sqlite with encryption", func(t *testing.T) {
		s, err := NewStore(ctx, internal.StateConfig{
			Driver:        "sqlite",
			SQLitePath:    filepath.Join(t.TempDir(), "state.db"),
			EncryptionKey: crypto.EncodeKeyBase64(key),
		}, logger)
		require.NoError(t, err)
		defer s.Close()

		require.IsType(t, &EncryptedStore{}, s)
		_, ok := AsPurger(s)
		assert.True(t, ok)

		require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", string(got))
	})

	t.Run("bad encryption key", func(t *testing.T) {
		_, err := NewStore(ctx, internal.StateConfig{Driver: "memory", EncryptionKey: "c2hvcnQ="}, logger)
		assert.ErrorContains(t, err, "STATE_ENCRYPTION_KEY")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewStore(ctx, internal.StateConfig{Driver: "etcd"}, logger)
		assert.Error(t, err)
	})
}
