package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store/drivers/sqlite"
	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store/storetest"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore("file:" + path + "?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestSQLiteStore(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "names.db"))
	t.Cleanup(func() { _ = s.Close() })

	storetest.RunNamesSuite(t, s)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.db")

	s := newTestStore(t, path)
	require.NoError(t, s.SetName(t.Context(), "tn_1", "kept"))
	require.NoError(t, s.Close())

	reopened := newTestStore(t, path)
	t.Cleanup(func() { _ = reopened.Close() })

	name, err := reopened.GetName(t.Context(), "tn_1")
	require.NoError(t, err)
	require.Equal(t, "kept", name)
}
