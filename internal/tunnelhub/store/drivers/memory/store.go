package memory

import (
	"context"
	"sync"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store"
)

// Store keeps custom names in process memory. Names are lost on restart.
type Store struct {
	mu    sync.RWMutex
	names map[string]string
}

var _ store.Names = (*Store)(nil)

func NewStore() *Store {
	return &Store{names: make(map[string]string)}
}

func (s *Store) GetNames(_ context.Context, tunnelIDs []string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(tunnelIDs))
	for _, id := range tunnelIDs {
		if name, ok := s.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func (s *Store) GetName(_ context.Context, tunnelID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.names[tunnelID]
	if !ok {
		return "", store.ErrNotFound
	}
	return name, nil
}

func (s *Store) SetName(_ context.Context, tunnelID, name string) error {
	if tunnelID == "" {
		return store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.names[tunnelID] = name
	return nil
}

func (s *Store) DeleteName(_ context.Context, tunnelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.names, tunnelID)
	return nil
}

func (s *Store) ApplyMigrations() error     { return nil }
func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }
