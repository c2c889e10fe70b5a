package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstantTimeEqual(t *testing.T) {
	require.True(t, ConstantTimeEqual("admin123", "admin123"))
	require.True(t, ConstantTimeEqual("", ""))
	require.False(t, ConstantTimeEqual("admin123", "admin124"))
	require.False(t, ConstantTimeEqual("admin123", "admin1234"))
	require.False(t, ConstantTimeEqual("admin123", ""))
	require.False(t, ConstantTimeEqual("Admin123", "admin123"))
}

func TestParseSecret_Plain(t *testing.T) {
	secret, err := ParseSecret("admin123")
	require.NoError(t, err)
	require.IsType(t, PlainSecret(""), secret)

	require.True(t, secret.Verify("admin123"))
	require.False(t, secret.Verify("admin12"))
	require.False(t, secret.Verify(""))
}

func TestHashSecret(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"simple", "password123"},
		{"symbols", "P@ssw0rd!#$%^&*()"},
		{"long", strings.Repeat("a", 100)},
		{"empty", ""},
		{"unicode", "пароль🔒密码"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := HashSecret(tt.value)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))
			require.Len(t, strings.Split(encoded, "$"), 6)

			secret, err := ParseSecret(encoded)
			require.NoError(t, err)
			require.IsType(t, &Argon2Secret{}, secret)

			require.True(t, secret.Verify(tt.value))
			require.False(t, secret.Verify(tt.value+"x"))
		})
	}
}

func TestHashSecret_UniqueSalts(t *testing.T) {
	h1, err := HashSecret("same")
	require.NoError(t, err)
	h2, err := HashSecret("same")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestParseArgon2Secret_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"too few parts", "$argon2id$v=19$m=65536"},
		{"wrong algorithm", "$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=65536,t=3,p=2$c2FsdHNhbHRzYWx0$aGFzaGhhc2hoYXNoaGFzaA"},
		{"bad params", "$argon2id$v=19$m=x,t=3,p=2$c2FsdHNhbHRzYWx0$aGFzaGhhc2hoYXNoaGFzaA"},
		{"zero params", "$argon2id$v=19$m=0,t=3,p=2$c2FsdHNhbHRzYWx0$aGFzaGhhc2hoYXNoaGFzaA"},
		{"bad salt", "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaGhhc2hoYXNoaGFzaA"},
		{"short hash", "$argon2id$v=19$m=65536,t=3,p=2$c2FsdHNhbHRzYWx0$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgon2Secret(tt.encoded)
			require.Error(t, err)
		})
	}
}
