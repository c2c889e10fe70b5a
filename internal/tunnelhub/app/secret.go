package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tunnelhub/pkg/cryptox"
)

// AdminSecret builds the verifier for the shared admin password. A
// configured ADMIN_PASSWORD_HASH wins and must be an Argon2id hash.
// ADMIN_PASSWORD may itself hold an Argon2id hash; anything else is compared
// as plaintext.
func AdminSecret(cfg Config, logger *slog.Logger) (cryptox.Secret, error) {
	if cfg.AdminPasswordHash != "" {
		secret, err := cryptox.ParseArgon2Secret(cfg.AdminPasswordHash)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_PASSWORD_HASH: %w", err)
		}
		return secret, nil
	}

	secret, err := cryptox.ParseSecret(cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_PASSWORD: %w", err)
	}
	if cfg.AdminPassword == DefaultAdminPassword {
		logger.Warn("using the default admin password; set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}
	return secret, nil
}
