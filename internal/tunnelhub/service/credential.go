package service

import (
	"context"
	"crypto/rsa"
	"log/slog"

	"github.com/aussiebroadwan/tunnelhub/pkg/cryptox"
	"github.com/aussiebroadwan/tunnelhub/pkg/slogx"
)

// PrivateKeyProvider supplies the key used to decrypt submitted passwords.
type PrivateKeyProvider interface {
	PrivateKey() (*rsa.PrivateKey, error)
}

// CredentialService decrypts client-encrypted passwords and checks them
// against the configured admin secret.
type CredentialService struct {
	Keys   PrivateKeyProvider
	Secret cryptox.Secret
	Logger *slog.Logger
}

// Decrypt base64-decodes and RSA-decrypts a password submitted by a client.
// Any failure in decoding, unpadding or UTF-8 validation is reported as
// ErrDecryptionFailed; the specific cause is only logged.
func (s *CredentialService) Decrypt(ctx context.Context, ciphertextB64 string) (string, error) {
	priv, err := s.Keys.PrivateKey()
	if err != nil {
		return "", ErrKeyUnavailable
	}

	plaintext, err := cryptox.DecryptPKCS1v15Base64(priv, ciphertextB64)
	if err != nil {
		slogx.FromContext(ctx).Warn("password decryption failed", "error", err)
		return "", ErrDecryptionFailed
	}
	return plaintext, nil
}

// Verify compares candidate with expected in constant time.
func (s *CredentialService) Verify(candidate, expected string) bool {
	return cryptox.ConstantTimeEqual(candidate, expected)
}

// Authenticate decrypts ciphertextB64 and checks the result against the
// admin secret. It returns nil on success, or one of ErrKeyUnavailable,
// ErrDecryptionFailed or ErrInvalidCredentials.
func (s *CredentialService) Authenticate(ctx context.Context, ciphertextB64 string) error {
	password, err := s.Decrypt(ctx, ciphertextB64)
	if err != nil {
		return err
	}

	if s.Secret == nil || !s.Secret.Verify(password) {
		return ErrInvalidCredentials
	}
	return nil
}

// CheckSecret verifies a plaintext secret, as used by the restart endpoint.
func (s *CredentialService) CheckSecret(candidate string) bool {
	return s.Secret != nil && s.Secret.Verify(candidate)
}
