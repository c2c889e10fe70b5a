package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters used by HashSecret.
const (
	argonMemory      = 64 * 1024
	argonIterations  = 3
	argonParallelism = 2
	argonSaltLength  = 16
	argonKeyLength   = 32
)

const argonPrefix = "$argon2id$"

// Secret is a stored credential that can check a candidate value.
type Secret interface {
	Verify(candidate string) bool
}

// PlainSecret is a secret held as its cleartext value.
type PlainSecret string

// Verify compares in constant time.
func (s PlainSecret) Verify(candidate string) bool {
	return ConstantTimeEqual(candidate, string(s))
}

// Argon2Secret is a secret held as an Argon2id hash.
type Argon2Secret struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	hash        []byte
}

// Verify derives a key from candidate with the stored parameters and
// compares it against the stored hash in constant time.
func (s *Argon2Secret) Verify(candidate string) bool {
	computed := argon2.IDKey(
		[]byte(candidate),
		s.salt,
		s.iterations,
		s.memory,
		s.parallelism,
		uint32(len(s.hash)), // #nosec G115 - hash length is bounded by ParseArgon2Secret
	)
	return subtle.ConstantTimeCompare(computed, s.hash) == 1
}

// ConstantTimeEqual reports whether a and b are equal. Both sides are hashed
// first so the comparison time does not depend on either length.
func ConstantTimeEqual(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}

// ParseSecret interprets a configured secret. Values in PHC Argon2id format
// ("$argon2id$v=19$...") are parsed as hashes; anything else is plaintext.
func ParseSecret(value string) (Secret, error) {
	if strings.HasPrefix(value, argonPrefix) {
		return ParseArgon2Secret(value)
	}
	return PlainSecret(value), nil
}

// ParseArgon2Secret parses a PHC-format Argon2id hash of the form
// $argon2id$v=19$m=X,t=Y,p=Z$salt$hash.
func ParseArgon2Secret(encoded string) (*Argon2Secret, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return nil, errors.New("invalid hash format: expected 6 parts")
	}
	if parts[1] != "argon2id" {
		return nil, errors.New("invalid hash format: not argon2id")
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return nil, errors.New("invalid hash format: wrong version")
	}

	s := &Argon2Secret{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &s.memory, &s.iterations, &s.parallelism); err != nil {
		return nil, fmt.Errorf("invalid hash format: failed to parse parameters: %w", err)
	}
	if s.memory == 0 || s.iterations == 0 || s.parallelism == 0 {
		return nil, errors.New("invalid hash format: zero parameter")
	}

	var err error
	if s.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("invalid hash format: failed to decode salt: %w", err)
	}
	if s.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("invalid hash format: failed to decode hash: %w", err)
	}
	if len(s.hash) < 16 || len(s.hash) > 1024 {
		return nil, errors.New("invalid hash format: bad hash length")
	}

	return s, nil
}

// HashSecret hashes value with Argon2id and a random salt and returns the
// PHC-format string accepted by ParseSecret.
func HashSecret(value string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(value), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonIterations,
		argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}
