package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aussiebroadwan/tunnelhub/pkg/keyx"
)

type KeygenCmd struct {
	Bits int    `help:"RSA modulus size in bits." default:"2048" env:"RSA_KEY_SIZE"`
	Out  string `help:"Write private_key.pem and public_key.pem into this directory instead of printing env values." type:"path"`
}

func (k *KeygenCmd) Run() error {
	kp, err := keyx.GenerateKeyPair(k.Bits)
	if err != nil {
		return err
	}

	if k.Out == "" {
		fmt.Printf("%s=\"%s\"\n", keyx.EnvPrivateKey, envEscape(kp.PrivatePEM))
		fmt.Printf("%s=\"%s\"\n", keyx.EnvPublicKey, envEscape(kp.PublicPEM))
		return nil
	}

	if err := os.MkdirAll(k.Out, 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", k.Out, err)
	}
	if err := os.WriteFile(filepath.Join(k.Out, keyx.PrivateKeyFile), kp.PrivatePEM, 0o600); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(k.Out, keyx.PublicKeyFile), kp.PublicPEM, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "wrote %d-bit key pair to %s\n", kp.Bits, k.Out)
	return nil
}

// envEscape folds PEM onto one line with literal \n separators, which the
// key resolver expands again.
func envEscape(pem []byte) string {
	return strings.ReplaceAll(strings.TrimSpace(string(pem)), "\n", `\n`)
}
