package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/domain"
	"github.com/stretchr/testify/require"
)

func TestSessionExpired(t *testing.T) {
	now := time.Now()

	require.False(t, domain.Session{}.Expired(now), "zero expiry never expires")
	require.False(t, domain.Session{ExpiresAt: now.Add(time.Second)}.Expired(now))
	require.True(t, domain.Session{ExpiresAt: now}.Expired(now))
	require.True(t, domain.Session{ExpiresAt: now.Add(-time.Second)}.Expired(now))
}

func TestUserConfigAPIURL(t *testing.T) {
	u := domain.UserConfig{
		Tokens:  []string{"a", "b", "c"},
		APIURLs: []string{"https://one", "https://two"},
	}
	require.Equal(t, "https://one", u.APIURL(0))
	require.Equal(t, "https://two", u.APIURL(1))
	require.Equal(t, "https://two", u.APIURL(2))
	require.Equal(t, "", domain.UserConfig{}.APIURL(0))
}

func TestUserConfigRedacted(t *testing.T) {
	u := domain.UserConfig{ID: "u1", Tokens: []string{"2abcdefghijklmnop1234", "xyz"}}
	r := u.Redacted()

	require.Equal(t, "********1234", r.Tokens[0])
	require.Equal(t, "***", r.Tokens[1])
	require.Equal(t, "2abcdefghijklmnop1234", u.Tokens[0], "original must be untouched")
}
