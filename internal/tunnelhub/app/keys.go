package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tunnelhub/pkg/keyx"
)

// InitKeys creates the key manager and makes sure a key pair is available
// before the server accepts requests.
//
// Storage modes:
//   - "ephemeral": a generated pair lives in memory only and is replaced on
//     every restart. Used on serverless platforms.
//   - "persistent": a generated pair is also written to KeysDir and adopted
//     again on the next start.
//
// RSA_PRIVATE_KEY and RSA_PUBLIC_KEY take precedence over both.
func InitKeys(cfg Config, logger *slog.Logger) (*keyx.Manager, error) {
	keys := keyx.NewManager(keyx.Options{
		Mode:   cfg.KeyStorageMode,
		Dir:    cfg.KeysDir,
		Logger: logger,
	})

	if err := keys.EnsureKeys(cfg.RSAKeySize); err != nil {
		return nil, fmt.Errorf("failed to ensure RSA keys: %w", err)
	}

	kp := keys.Current()
	logger.Info("rsa key pair ready",
		"mode", keys.Mode(),
		"source", kp.Source,
		"bits", kp.Bits,
	)
	return keys, nil
}
