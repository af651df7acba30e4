package state

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/crypto"
)

// NewStore opens the backend selected by cfg.Driver. SQL backends are
// migrated before use. When cfg.EncryptionKey is set, values are encrypted
// at rest.
func NewStore(ctx context.Context, cfg internal.StateConfig, logger *slog.Logger) (Store, error) {
	s, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.EncryptionKey == "" {
		return s, nil
	}

	key, err := crypto.DecodeKeyBase64(cfg.EncryptionKey)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("invalid STATE_ENCRYPTION_KEY: %w", err)
	}
	enc, err := crypto.NewAESEncryptor(key)
	if err != nil {
		s.Close()
		return nil, err
	}
	logger.Info("State encryption enabled")
	return NewEncryptedStore(s, enc), nil
}

func openBackend(ctx context.Context, cfg internal.StateConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case "memory", "":
		return NewMemoryStore(), nil

	case "redis":
		logger.Info("Connecting to redis...", "addr", cfg.RedisAddr)
		s, err := NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return s, nil

	case "postgres":
		logger.Info("Connecting to database...")
		if err := migratePostgres(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("database ping failed: %w", err)
		}
		logger.Info("Database connection established")
		return NewPostgresStore(pool), nil

	case "sqlite":
		logger.Info("Opening sqlite state store...", "path", cfg.SQLitePath)
		return NewSQLiteStore(cfg.SQLitePath)

	default:
		return nil, fmt.Errorf("unknown state driver %q", cfg.Driver)
	}
}

// migratePostgres runs migrations over a database/sql handle, which goose
// requires; the store itself uses a pgx pool.
func migratePostgres(url string) error {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	if err := internal.RunMigrations(db, internal.DialectPostgres); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
