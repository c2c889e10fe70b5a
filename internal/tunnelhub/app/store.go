package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store"
	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store/drivers/memory"
	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store/drivers/redis"
	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store/drivers/sqlite"
)

// OpenNameStore opens the configured custom-name store and applies its
// migrations. If a sqlite or redis store cannot be opened the in-memory store
// is used instead so the dashboard still starts.
func OpenNameStore(ctx context.Context, cfg Config, logger *slog.Logger) store.Names {
	names, err := openNameStore(ctx, cfg)
	if err != nil {
		logger.Warn("name store unavailable, falling back to memory",
			"driver", cfg.NameStore,
			"error", err,
		)
		return memory.NewStore()
	}

	logger.Info("name store ready", "driver", cfg.NameStore)
	return names
}

func openNameStore(ctx context.Context, cfg Config) (store.Names, error) {
	var (
		names store.Names
		err   error
	)

	switch cfg.NameStore {
	case NameStoreSQLite:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
		names, err = sqlite.NewStore(dsn)
	case NameStoreRedis:
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		names, err = redis.NewStore(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return memory.NewStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.NameStore, err)
	}

	if err := names.ApplyMigrations(); err != nil {
		_ = names.Close()
		return nil, fmt.Errorf("failed to apply %s migrations: %w", cfg.NameStore, err)
	}
	return names, nil
}
