package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store/drivers/memory"
	"github.com/aussiebroadwan/tunnelhub/pkg/cryptox"
	"github.com/aussiebroadwan/tunnelhub/pkg/keyx"
	"github.com/aussiebroadwan/tunnelhub/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	t.Setenv(keyx.EnvPrivateKey, "")
	t.Setenv(keyx.EnvPublicKey, "")

	return Config{
		AdminPassword:        "test-password",
		RSAKeySize:           2048,
		KeyStorageMode:       keyx.ModeEphemeral,
		KeysDir:              t.TempDir(),
		RateLimitRPM:         120,
		MaxRequestSize:       1024,
		AutoRefreshInterval:  5,
		Users:                `[{"id": "alice", "ngrok_tokens": ["tok_alice"]}]`,
		NameStore:            NameStoreMemory,
		Port:                 0,
		ShutdownGracePeriod:  5 * time.Second,
		HousekeepingInterval: time.Minute,
	}
}

func TestAdminSecret(t *testing.T) {
	logger := slogx.Discard()

	t.Run("plaintext", func(t *testing.T) {
		secret, err := AdminSecret(Config{AdminPassword: "s3cret"}, logger)
		require.NoError(t, err)
		require.True(t, secret.Verify("s3cret"))
		require.False(t, secret.Verify("S3cret"))
	})

	t.Run("hash wins", func(t *testing.T) {
		hash, err := cryptox.HashSecret("hashed")
		require.NoError(t, err)

		secret, err := AdminSecret(Config{AdminPassword: "plain", AdminPasswordHash: hash}, logger)
		require.NoError(t, err)
		require.True(t, secret.Verify("hashed"))
		require.False(t, secret.Verify("plain"))
	})

	t.Run("hash in password variable", func(t *testing.T) {
		hash, err := cryptox.HashSecret("from-env")
		require.NoError(t, err)

		secret, err := AdminSecret(Config{AdminPassword: hash}, logger)
		require.NoError(t, err)
		require.True(t, secret.Verify("from-env"))
		require.False(t, secret.Verify(hash))
	})

	t.Run("bad hash", func(t *testing.T) {
		_, err := AdminSecret(Config{AdminPasswordHash: "$argon2id$broken"}, logger)
		require.Error(t, err)
	})
}

func TestOpenNameStore(t *testing.T) {
	ctx := context.Background()
	logger := slogx.Discard()

	t.Run("sqlite", func(t *testing.T) {
		names := OpenNameStore(ctx, Config{
			NameStore:    NameStoreSQLite,
			DatabaseFile: filepath.Join(t.TempDir(), "names.db"),
		}, logger)
		t.Cleanup(func() { _ = names.Close() })

		require.NotNil(t, names)
		_, isMemory := names.(*memory.Store)
		require.False(t, isMemory)

		require.NoError(t, names.SetName(ctx, "tn_1", "web"))
		name, err := names.GetName(ctx, "tn_1")
		require.NoError(t, err)
		require.Equal(t, "web", name)
	})

	t.Run("unreachable redis falls back to memory", func(t *testing.T) {
		names := OpenNameStore(ctx, Config{
			NameStore: NameStoreRedis,
			RedisAddr: "127.0.0.1:1",
		}, logger)
		t.Cleanup(func() { _ = names.Close() })

		_, isMemory := names.(*memory.Store)
		require.True(t, isMemory)
	})
}

func TestNewWiresHandler(t *testing.T) {
	application, err := NewWithLogger(testConfig(t), slogx.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.names.Close() })

	for _, path := range []string{"/livez", "/readyz", "/api/public-key", "/api", "/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		application.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Users = `[{"id": "dup"}, {"id": "dup"}]`
	_, err := NewWithLogger(cfg, slogx.Discard())
	require.Error(t, err)

	cfg = testConfig(t)
	cfg.TrustedProxies = []string{"not-a-cidr"}
	_, err = NewWithLogger(cfg, slogx.Discard())
	require.Error(t, err)

	cfg = testConfig(t)
	cfg.RSAKeySize = 512
	_, err = NewWithLogger(cfg, slogx.Discard())
	require.ErrorContains(t, err, "invalid configuration")
}

func TestRunReturnsOnRestart(t *testing.T) {
	application, err := NewWithLogger(testConfig(t), slogx.Discard())
	require.NoError(t, err)

	application.requestRestart()
	application.requestRestart() // coalesced

	require.ErrorIs(t, application.Run(), ErrRestartRequested)
}
