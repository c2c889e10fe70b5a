package redis

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store"
	"github.com/redis/go-redis/v9"
)

// DefaultKey is the hash holding tunnel id -> custom name.
const DefaultKey = "tunnelhub:names"

// Options configures the connection.
type Options struct {
	Addr     string
	Username string
	Password string
	DB       int
	// Key overrides DefaultKey, e.g. to share one Redis between deployments.
	Key string
}

// Store keeps custom names in a single Redis hash so several dashboard
// instances see the same names.
type Store struct {
	client *redis.Client
	key    string
}

var _ store.Names = (*Store)(nil)

// NewStore connects and pings the server.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	key := opts.Key
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}, nil
}

func (s *Store) GetNames(ctx context.Context, tunnelIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(tunnelIDs))
	if len(tunnelIDs) == 0 {
		return out, nil
	}

	vals, err := s.client.HMGet(ctx, s.key, tunnelIDs...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		if name, ok := v.(string); ok {
			out[tunnelIDs[i]] = name
		}
	}
	return out, nil
}

func (s *Store) GetName(ctx context.Context, tunnelID string) (string, error) {
	name, err := s.client.HGet(ctx, s.key, tunnelID).Result()
	if errors.Is(err, redis.Nil) {
		return "", store.ErrNotFound
	}
	return name, err
}

func (s *Store) SetName(ctx context.Context, tunnelID, name string) error {
	if tunnelID == "" {
		return store.ErrInvalidInput
	}
	return s.client.HSet(ctx, s.key, tunnelID, name).Err()
}

func (s *Store) DeleteName(ctx context.Context, tunnelID string) error {
	return s.client.HDel(ctx, s.key, tunnelID).Err()
}

func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error { return s.client.Close() }
