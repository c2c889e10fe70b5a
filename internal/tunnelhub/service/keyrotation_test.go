package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/tunnelhub/pkg/keyx"
	"github.com/aussiebroadwan/tunnelhub/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestKeyRotation(t *testing.T) {
	t.Parallel()

	keys := keyx.NewManager(keyx.Options{
		Mode:   keyx.ModePersistent,
		Dir:    t.TempDir(),
		Env:    &keyx.EnvResolver{Getenv: func(string) string { return "" }},
		Logger: slogx.Discard(),
	})
	require.NoError(t, keys.EnsureKeys(2048))
	before := keys.Current()

	sessions := NewSessionService(0, slogx.Discard())
	sess := sessions.Create(true, "")

	svc := &KeyRotationService{Keys: keys, Logger: slogx.Discard()}
	resp, err := svc.Rotate(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2048, resp.KeySize)
	require.Equal(t, keyx.SourceFile, resp.Source)

	after := keys.Current()
	require.NotEqual(t, before.PublicPEM, after.PublicPEM)

	// Sessions survive rotation.
	_, ok := sessions.Lookup(sess.Token)
	require.True(t, ok)
}

func TestKeyRotationRequiresManager(t *testing.T) {
	t.Parallel()

	_, err := (&KeyRotationService{}).Rotate(context.Background())
	require.Error(t, err)
}
