package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tunnelhub/pkg/keyx"
	"github.com/aussiebroadwan/tunnelhub/pkg/slogx"
)

// KeyRotationService replaces the active RSA key pair at runtime.
//
// Sessions are opaque tokens and do not depend on the key, so rotation
// leaves them intact. Clients holding the old public key must fetch the new
// one before their next login.
type KeyRotationService struct {
	Keys   *keyx.Manager
	Bits   int
	Logger *slog.Logger
}

// RotateKeyResponse describes the newly active key pair.
type RotateKeyResponse struct {
	KeySize int
	Source  keyx.Source
}

// Rotate generates and activates a new key pair. In persistent mode the pair
// is also written to the key directory.
func (s *KeyRotationService) Rotate(ctx context.Context) (*RotateKeyResponse, error) {
	if s.Keys == nil {
		return nil, fmt.Errorf("key manager is required")
	}

	bits := s.Bits
	if bits == 0 {
		bits = keyx.DefaultBits
	}

	kp, err := s.Keys.Generate(bits)
	if err != nil {
		return nil, fmt.Errorf("failed to rotate key pair: %w", err)
	}

	slogx.FromContext(ctx).Info("key pair rotated", "bits", kp.Bits, "source", kp.Source)

	return &RotateKeyResponse{KeySize: kp.Bits, Source: kp.Source}, nil
}
