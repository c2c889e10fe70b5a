package service

import (
	"errors"

	"github.com/aussiebroadwan/tunnelhub/pkg/keyx"
)

var (
	// ErrKeyUnavailable means no RSA key material could be resolved. This is
	// a server misconfiguration, not a client error.
	ErrKeyUnavailable = keyx.ErrKeyUnavailable

	// ErrDecryptionFailed covers every way a submitted ciphertext can be
	// unusable. Callers must not learn which step failed.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidCredentials means the ciphertext decrypted but the password
	// did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidName rejects an empty or over-long custom tunnel name.
	ErrInvalidName = errors.New("custom name must be between 1 and 100 characters")
)
