package relay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/aussiebroadwan/tunnelhub/pkg/relay"
	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/require"
)

func newTestClient(opts ...relay.Option) *relay.Client {
	base := []relay.Option{
		relay.WithBackOff(func() backoff.BackOff { return &backoff.ZeroBackOff{} }),
	}
	return relay.New(append(base, opts...)...)
}

func writeTunnels(w http.ResponseWriter, next *string, tunnels ...relay.Tunnel) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"tunnels":       tunnels,
		"next_page_uri": next,
	})
}

func TestListTunnels(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		require.Equal(t, "2", r.Header.Get("Ngrok-Version"))
		require.Equal(t, "/tunnels", r.URL.Path)

		writeTunnels(w, nil,
			relay.Tunnel{ID: "tn_1", PublicURL: "https://a.ngrok.app", Proto: "https", Region: "us"},
			relay.Tunnel{ID: "tn_2", PublicURL: "tcp://1.tcp.ngrok.io:1234", Proto: "tcp", ForwardsTo: "localhost:22"},
		)
	}))
	t.Cleanup(srv.Close)

	tunnels, err := newTestClient().ListTunnels(t.Context(), "tok-1", srv.URL+"/")
	require.NoError(t, err)
	require.Len(t, tunnels, 2)
	require.Equal(t, "tn_1", tunnels[0].ID)
	require.Equal(t, "localhost:22", tunnels[1].ForwardsTo)
	require.EqualValues(t, 1, calls.Load())
}

func TestListTunnels_FollowsPagination(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("before_id") == "" {
			next := srv.URL + "/tunnels?before_id=tn_1"
			writeTunnels(w, &next, relay.Tunnel{ID: "tn_1"})
			return
		}
		writeTunnels(w, nil, relay.Tunnel{ID: "tn_2"})
	}))
	t.Cleanup(srv.Close)

	tunnels, err := newTestClient().ListTunnels(t.Context(), "tok", srv.URL)
	require.NoError(t, err)
	require.Len(t, tunnels, 2)
	require.Equal(t, "tn_2", tunnels[1].ID)
}

func TestListTunnels_RefusesForeignNextPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next := "https://evil.example.com/tunnels"
		writeTunnels(w, &next, relay.Tunnel{ID: "tn_1"})
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient().ListTunnels(t.Context(), "tok", srv.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "refusing")
}

func TestListTunnels_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		writeTunnels(w, nil, relay.Tunnel{ID: "tn_1"})
	}))
	t.Cleanup(srv.Close)

	tunnels, err := newTestClient().ListTunnels(t.Context(), "tok", srv.URL)
	require.NoError(t, err)
	require.Len(t, tunnels, 1)
	require.EqualValues(t, 3, calls.Load())
}

func TestListTunnels_GivesUpAfterMaxTries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(relay.WithMaxTries(2)).ListTunnels(t.Context(), "tok", srv.URL)

	var apiErr *relay.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	require.EqualValues(t, 2, calls.Load())
}

func TestListTunnels_ClientErrorsArePermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"msg":"bad token"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient().ListTunnels(t.Context(), "tok", srv.URL)

	var apiErr *relay.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.False(t, apiErr.Temporary())
	require.EqualValues(t, 1, calls.Load())
}

func TestListTunnels_CachePerToken(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Cache-Control", "max-age=60")
		writeTunnels(w, nil, relay.Tunnel{ID: r.Header.Get("Authorization")})
	}))
	t.Cleanup(srv.Close)

	c := newTestClient()

	first, err := c.ListTunnels(t.Context(), "tok-a", srv.URL)
	require.NoError(t, err)
	again, err := c.ListTunnels(t.Context(), "tok-a", srv.URL)
	require.NoError(t, err)
	require.Equal(t, first, again)
	require.EqualValues(t, 1, calls.Load(), "second call should be a cache hit")

	other, err := c.ListTunnels(t.Context(), "tok-b", srv.URL)
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-b", other[0].ID)
	require.EqualValues(t, 2, calls.Load())
}

func TestListTunnels_InvalidInput(t *testing.T) {
	c := newTestClient()

	_, err := c.ListTunnels(t.Context(), "", "")
	require.Error(t, err)

	_, err = c.ListTunnels(t.Context(), "tok", "::not a url")
	require.Error(t, err)
}

func TestListTunnels_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTunnels(w, nil)
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := newTestClient().ListTunnels(ctx, "tok", srv.URL)
	require.ErrorIs(t, err, context.Canceled)
}
