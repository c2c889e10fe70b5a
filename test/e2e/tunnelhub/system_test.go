package tunnelhub_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tunnelhub/pkg/hubsdk"
	"github.com/stretchr/testify/require"
)

func TestProbesAndIndex(t *testing.T) {
	baseURL := setupHubContainer(t, nil)
	client := hubsdk.NewClient(baseURL)
	ctx := context.Background()

	live, err := client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)

	health, err := client.Health(ctx)
	require.NoError(t, err)
	require.Equal(t, "running", health.Status)

	index, err := client.GetAPIIndex(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, index.Endpoints)

	resp, err := http.Get(baseURL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Content-Security-Policy"))
}

// TestRateLimit uses the production default of 120 requests per minute.
func TestRateLimit(t *testing.T) {
	baseURL := setupHubContainer(t, map[string]string{"RATE_LIMIT_RPM": "120"})
	client := hubsdk.NewClient(baseURL)
	ctx := context.Background()

	var limited error
	for range 130 {
		if _, err := client.GetAPIIndex(ctx); err != nil {
			limited = err
			break
		}
	}
	require.True(t, hubsdk.IsRateLimited(limited), "expected a 429, got %v", limited)

	var apiErr *hubsdk.APIError
	require.ErrorAs(t, limited, &apiErr)
	require.Positive(t, apiErr.RetryAfter)

	// Exempt paths keep working while the bucket is empty.
	_, err := client.GetLiveness(ctx)
	require.NoError(t, err)
	_, err = client.GetPublicKey(ctx)
	require.NoError(t, err)
}
