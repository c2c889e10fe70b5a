package keyx

import (
	"bytes"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/tunnelhub/pkg/cryptox"
)

// Source identifies the tier a key pair was resolved from.
type Source string

const (
	SourceMemory      Source = "memory"
	SourceEnvironment Source = "environment"
	SourceFile        Source = "file"
)

// DefaultBits is the RSA modulus size used when none is configured.
const DefaultBits = 2048

// ErrKeyUnavailable is returned when no tier can supply key material.
var ErrKeyUnavailable = errors.New("keyx: no key material available")

// ErrKeyMismatch is returned when supplied public material does not belong
// to the supplied private key.
var ErrKeyMismatch = errors.New("keyx: public key does not match private key")

// KeyPair is an immutable RSA key pair with its PEM encodings. A new pair is
// built for every adoption or regeneration; a KeyPair is never modified.
type KeyPair struct {
	Bits       int
	PrivatePEM []byte
	PublicPEM  []byte
	Source     Source

	private *rsa.PrivateKey
}

// PrivateKey returns the parsed private key.
func (kp *KeyPair) PrivateKey() *rsa.PrivateKey {
	return kp.private
}

// GenerateKeyPair creates a fresh pair with public exponent 65537, a PKCS8
// private encoding and a SubjectPublicKeyInfo public encoding.
func GenerateKeyPair(bits int) (*KeyPair, error) {
	priv, privPEM, err := cryptox.GenerateRSAKeyPKCS8(bits)
	if err != nil {
		return nil, err
	}

	pubPEM, err := cryptox.MarshalPublicKeyPEM(&priv.PublicKey)
	if err != nil {
		return nil, err
	}

	return &KeyPair{
		Bits:       priv.N.BitLen(),
		PrivatePEM: privPEM,
		PublicPEM:  pubPEM,
		Source:     SourceMemory,
		private:    priv,
	}, nil
}

// ParseKeyPair builds a KeyPair from PEM material. Both halves are required
// and the public key must match the private key.
func ParseKeyPair(m Material, source Source) (*KeyPair, error) {
	if !m.Complete() {
		return nil, fmt.Errorf("keyx: incomplete key material from %s", source)
	}

	priv, err := cryptox.ParsePrivateKeyPEM(m.PrivatePEM)
	if err != nil {
		return nil, fmt.Errorf("keyx: private key from %s: %w", source, err)
	}

	pub, err := cryptox.ParsePublicKeyPEM(m.PublicPEM)
	if err != nil {
		return nil, fmt.Errorf("keyx: public key from %s: %w", source, err)
	}

	if !priv.PublicKey.Equal(pub) {
		return nil, ErrKeyMismatch
	}

	return &KeyPair{
		Bits:       priv.N.BitLen(),
		PrivatePEM: bytes.Clone(m.PrivatePEM),
		PublicPEM:  bytes.Clone(m.PublicPEM),
		Source:     source,
		private:    priv,
	}, nil
}
