// Package storetest holds a behavioural suite every store.Names driver must
// pass.
package storetest

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store"
	"github.com/stretchr/testify/require"
)

// RunNamesSuite exercises s. The store must start empty.
func RunNamesSuite(t *testing.T, s store.Names) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing name", func(t *testing.T) {
		_, err := s.GetName(ctx, "tn_missing")
		require.ErrorIs(t, err, store.ErrNotFound)

		names, err := s.GetNames(ctx, []string{"tn_missing"})
		require.NoError(t, err)
		require.Empty(t, names)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, s.SetName(ctx, "tn_1", "web server"))
		require.NoError(t, s.SetName(ctx, "tn_2", "ssh"))

		name, err := s.GetName(ctx, "tn_1")
		require.NoError(t, err)
		require.Equal(t, "web server", name)

		names, err := s.GetNames(ctx, []string{"tn_1", "tn_2", "tn_3"})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"tn_1": "web server", "tn_2": "ssh"}, names)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.SetName(ctx, "tn_1", "api"))
		name, err := s.GetName(ctx, "tn_1")
		require.NoError(t, err)
		require.Equal(t, "api", name)
	})

	t.Run("unicode", func(t *testing.T) {
		require.NoError(t, s.SetName(ctx, "tn_u", "トンネル 🚇"))
		name, err := s.GetName(ctx, "tn_u")
		require.NoError(t, err)
		require.Equal(t, "トンネル 🚇", name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.DeleteName(ctx, "tn_2"))
		require.NoError(t, s.DeleteName(ctx, "tn_2"))

		_, err := s.GetName(ctx, "tn_2")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("empty inputs", func(t *testing.T) {
		names, err := s.GetNames(ctx, nil)
		require.NoError(t, err)
		require.Empty(t, names)

		require.ErrorIs(t, s.SetName(ctx, "", "x"), store.ErrInvalidInput)
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, s.Ping(ctx))
	})
}
