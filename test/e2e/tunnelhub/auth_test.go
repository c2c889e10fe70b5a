package tunnelhub_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/tunnelhub/pkg/hubsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginLifecycle covers login, an authenticated call and logout.
func TestLoginLifecycle(t *testing.T) {
	baseURL := setupHubContainer(t, nil)
	client := hubsdk.NewClient(baseURL)
	ctx := context.Background()

	pk, err := client.GetPublicKey(ctx)
	require.NoError(t, err)
	require.Contains(t, pk.PublicKey, "BEGIN PUBLIC KEY")
	require.Equal(t, 2048, pk.KeySize)

	_, err = client.Login(ctx, "wrong-password")
	require.Error(t, err)

	session := login(t, client)

	users, err := session.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users.Users, 2)
	for _, u := range users.Users {
		for _, tok := range u.Tokens {
			require.NotContains(t, tok, "tok_", "tokens must be redacted")
		}
	}

	require.NoError(t, session.Logout(ctx))

	_, err = session.ListUsers(ctx)
	require.True(t, hubsdk.IsUnauthorized(err), "session must be gone after logout: %v", err)
}

// TestTunnelsDegradeWhenRelayUnreachable checks that failing accounts yield
// an empty list instead of an error.
func TestTunnelsDegradeWhenRelayUnreachable(t *testing.T) {
	baseURL := setupHubContainer(t, nil)
	client := hubsdk.NewClient(baseURL)
	ctx := context.Background()

	session := login(t, client)

	list, err := session.ListTunnels(ctx, "")
	require.NoError(t, err)
	require.True(t, list.Success)
	require.Empty(t, list.Tunnels)
	require.Nil(t, list.FilteredUser)

	list, err = session.ListTunnels(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, list.FilteredUser)
	require.Equal(t, "alice", *list.FilteredUser)

	named, err := session.SetTunnelName(ctx, "tn_e2e", "  staging api  ")
	require.NoError(t, err)
	require.Equal(t, "staging api", named.CustomName)

	require.NoError(t, session.ClearTunnelName(ctx, "tn_e2e"))
}

// TestKeyRotation checks that sessions survive a rotation and the new key
// is served afterwards.
func TestKeyRotation(t *testing.T) {
	baseURL := setupHubContainer(t, map[string]string{"KEY_STORAGE_MODE": "ephemeral"})
	client := hubsdk.NewClient(baseURL)
	ctx := context.Background()

	before, err := client.GetPublicKey(ctx)
	require.NoError(t, err)

	session := login(t, client)

	rotated, err := session.RotateKey(ctx)
	require.NoError(t, err)
	require.True(t, rotated.Success)

	after, err := client.GetPublicKey(ctx)
	require.NoError(t, err)
	require.NotEqual(t, before.PublicKey, after.PublicKey)

	_, err = session.ListUsers(ctx)
	require.NoError(t, err)

	login(t, client)
}
