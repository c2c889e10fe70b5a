package redis_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store/drivers/redis"
	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store/storetest"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startRedis runs a throwaway Redis in Docker.
func startRedis(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

func TestRedisStore(t *testing.T) {
	addr := startRedis(t)

	s, err := redis.NewStore(t.Context(), redis.Options{Addr: addr, Key: "tunnelhub:test:names"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	storetest.RunNamesSuite(t, s)
}

func TestRedisStore_Unreachable(t *testing.T) {
	_, err := redis.NewStore(t.Context(), redis.Options{Addr: "127.0.0.1:1"})
	require.Error(t, err)
}
