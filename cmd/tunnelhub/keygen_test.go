package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/tunnelhub/pkg/cryptox"
	"github.com/aussiebroadwan/tunnelhub/pkg/keyx"
	"github.com/stretchr/testify/require"
)

func TestKeygenWritesPair(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "keys")
	require.NoError(t, (&KeygenCmd{Bits: 2048, Out: dir}).Run())

	privPEM, err := os.ReadFile(filepath.Join(dir, keyx.PrivateKeyFile))
	require.NoError(t, err)
	pubPEM, err := os.ReadFile(filepath.Join(dir, keyx.PublicKeyFile))
	require.NoError(t, err)

	kp, err := keyx.ParseKeyPair(keyx.Material{PrivatePEM: privPEM, PublicPEM: pubPEM}, keyx.SourceFile)
	require.NoError(t, err)
	require.Equal(t, 2048, kp.Bits)
}

func TestEnvEscapeRoundTrip(t *testing.T) {
	kp, err := keyx.GenerateKeyPair(2048)
	require.NoError(t, err)

	env := map[string]string{
		keyx.EnvPrivateKey: envEscape(kp.PrivatePEM),
		keyx.EnvPublicKey:  envEscape(kp.PublicPEM),
	}
	require.NotContains(t, env[keyx.EnvPrivateKey], "\n")

	resolver := &keyx.EnvResolver{
		Getenv:     func(k string) string { return env[k] },
		PrivateVar: keyx.EnvPrivateKey,
		PublicVar:  keyx.EnvPublicKey,
	}
	m, found, err := resolver.Resolve()
	require.NoError(t, err)
	require.True(t, found)

	priv, err := cryptox.ParsePrivateKeyPEM(m.PrivatePEM)
	require.NoError(t, err)
	require.True(t, kp.PrivateKey().Equal(priv))
	require.True(t, strings.HasPrefix(string(m.PublicPEM), "-----BEGIN PUBLIC KEY-----"))
}

func TestHashpw(t *testing.T) {
	require.Error(t, (&HashpwCmd{}).runWith(strings.NewReader("\n"), &strings.Builder{}))

	var out strings.Builder
	require.NoError(t, (&HashpwCmd{Password: "s3cret"}).runWith(nil, &out))

	secret, err := cryptox.ParseArgon2Secret(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	require.True(t, secret.Verify("s3cret"))
}
