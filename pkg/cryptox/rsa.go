package cryptox

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"unicode/utf8"
)

// MinRSABits is the smallest RSA modulus we are willing to generate or load.
const MinRSABits = 2048

const (
	pemTypePrivatePKCS8 = "PRIVATE KEY"
	pemTypePrivatePKCS1 = "RSA PRIVATE KEY"
	pemTypePublicSPKI   = "PUBLIC KEY"
)

var (
	// ErrInvalidPEM reports PEM input that holds no usable block.
	ErrInvalidPEM = errors.New("cryptox: invalid PEM data")

	// ErrNotRSAKey reports a parsed key of some other algorithm.
	ErrNotRSAKey = errors.New("cryptox: key is not an RSA key")
)

// GenerateRSAKeyPKCS8 generates a new RSA private key (public exponent 65537)
// and returns the key alongside its PKCS8 PEM encoding.
func GenerateRSAKeyPKCS8(bits int) (*rsa.PrivateKey, []byte, error) {
	if bits < MinRSABits {
		return nil, nil, fmt.Errorf("cryptox: RSA key size must be at least %d bits", MinRSABits)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, fmt.Errorf("cryptox: failed to generate RSA key: %w", err)
	}

	privatePEM, err := MarshalPrivateKeyPEM(privateKey)
	if err != nil {
		return nil, nil, err
	}

	return privateKey, privatePEM, nil
}

// MarshalPrivateKeyPEM encodes an RSA private key as a PKCS8 "PRIVATE KEY" block.
func MarshalPrivateKeyPEM(key *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal PKCS8 key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: pemTypePrivatePKCS8, Bytes: der}), nil
}

// MarshalPublicKeyPEM encodes an RSA public key as a SubjectPublicKeyInfo
// "PUBLIC KEY" block.
func MarshalPublicKeyPEM(key *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal public key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: pemTypePublicSPKI, Bytes: der}), nil
}

// ParsePrivateKeyPEM parses an RSA private key from PEM. PKCS8 is expected but
// PKCS1 ("RSA PRIVATE KEY") is accepted for keys minted by older tooling.
func ParsePrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEM
	}

	switch block.Type {
	case pemTypePrivatePKCS1:
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("cryptox: failed to parse PKCS1 key: %w", err)
		}
		return key, nil

	default:
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("cryptox: failed to parse PKCS8 key: %w", err)
		}

		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, ErrNotRSAKey
		}
		return key, nil
	}
}

// ParsePublicKeyPEM parses a SubjectPublicKeyInfo RSA public key from PEM.
func ParsePublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEM
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to parse public key: %w", err)
	}

	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, ErrNotRSAKey
	}
	return key, nil
}

// EncryptPKCS1v15Base64 encrypts plaintext with PKCS#1 v1.5 padding and returns
// the ciphertext as standard base64. This is what browser clients do before
// submitting a password.
func EncryptPKCS1v15Base64(pub *rsa.PublicKey, plaintext string) (string, error) {
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, pub, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("cryptox: encrypt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptPKCS1v15Base64 reverses EncryptPKCS1v15Base64. The plaintext must be
// valid UTF-8. Returned errors describe the failing step and are meant for
// logs only.
func DecryptPKCS1v15Base64(priv *rsa.PrivateKey, ciphertextB64 string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", fmt.Errorf("cryptox: decode base64: %w", err)
	}

	plaintext, err := rsa.DecryptPKCS1v15(nil, priv, ciphertext)
	if err != nil {
		return "", fmt.Errorf("cryptox: decrypt: %w", err)
	}

	if !utf8.Valid(plaintext) {
		return "", errors.New("cryptox: plaintext is not valid UTF-8")
	}

	return string(plaintext), nil
}
