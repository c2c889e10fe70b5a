package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("store: not found")
	ErrInvalidInput = errors.New("store: invalid input")
)

// Names holds the custom display names users give to tunnels. Concrete
// drivers (memory, sqlite, redis) implement it.
type Names interface {
	// GetNames returns the custom names for the given tunnel ids. Ids without
	// a name are absent from the result.
	GetNames(ctx context.Context, tunnelIDs []string) (map[string]string, error)

	// GetName returns ErrNotFound when no name is set.
	GetName(ctx context.Context, tunnelID string) (string, error)

	// SetName stores or replaces the name for a tunnel.
	SetName(ctx context.Context, tunnelID, name string) error

	// DeleteName removes a name. Deleting a missing name is not an error.
	DeleteName(ctx context.Context, tunnelID string) error

	// ApplyMigrations prepares the backing schema, if the driver has one.
	ApplyMigrations() error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}
