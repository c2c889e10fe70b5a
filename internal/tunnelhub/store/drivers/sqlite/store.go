package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store"
	_ "modernc.org/sqlite"
)

// Store keeps custom names in a SQLite database so they survive restarts.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ store.Names = (*Store)(nil)

// NewStore opens the database at dsn. Call ApplyMigrations before use.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) GetNames(ctx context.Context, tunnelIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(tunnelIDs))
	if len(tunnelIDs) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(tunnelIDs)), ",")
	args := make([]any, len(tunnelIDs))
	for i, id := range tunnelIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT tunnel_id, custom_name FROM tunnel_names WHERE tunnel_id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = name
	}
	return out, rows.Err()
}

func (s *Store) GetName(ctx context.Context, tunnelID string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT custom_name FROM tunnel_names WHERE tunnel_id = ?`, tunnelID,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	return name, err
}

func (s *Store) SetName(ctx context.Context, tunnelID, name string) error {
	if tunnelID == "" {
		return store.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tunnel_names (tunnel_id, custom_name, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (tunnel_id) DO UPDATE SET
			custom_name = excluded.custom_name,
			updated_at  = excluded.updated_at`,
		tunnelID, name, s.now().UTC(),
	)
	return err
}

func (s *Store) DeleteName(ctx context.Context, tunnelID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tunnel_names WHERE tunnel_id = ?`, tunnelID)
	return err
}
