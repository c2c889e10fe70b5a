package keyx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvPrivateKey and EnvPublicKey name the variables holding PEM material.
	EnvPrivateKey = "RSA_PRIVATE_KEY"
	EnvPublicKey  = "RSA_PUBLIC_KEY"

	// PrivateKeyFile and PublicKeyFile are the file names inside the key directory.
	PrivateKeyFile = "private_key.pem"
	PublicKeyFile  = "public_key.pem"
)

// Material is raw PEM key material as supplied by a tier. Either half may be
// empty when a tier only has part of a pair.
type Material struct {
	PrivatePEM []byte
	PublicPEM  []byte
}

// Complete reports whether both halves are present.
func (m Material) Complete() bool {
	return len(m.PrivatePEM) > 0 && len(m.PublicPEM) > 0
}

// Resolver is a single key material tier. Resolve returns found=false when
// the tier holds nothing, and an error only when the tier exists but could
// not be read.
type Resolver interface {
	Name() Source
	Resolve() (m Material, found bool, err error)
}

// EnvResolver reads PEM material from environment variables. Literal "\n"
// sequences are expanded so single-line values from hosting dashboards work.
type EnvResolver struct {
	Getenv     func(string) string
	PrivateVar string
	PublicVar  string
}

// NewEnvResolver returns a resolver over the process environment using the
// default variable names.
func NewEnvResolver() *EnvResolver {
	return &EnvResolver{Getenv: os.Getenv, PrivateVar: EnvPrivateKey, PublicVar: EnvPublicKey}
}

func (r *EnvResolver) Name() Source { return SourceEnvironment }

func (r *EnvResolver) Resolve() (Material, bool, error) {
	m := Material{
		PrivatePEM: expandNewlines(r.Getenv(r.PrivateVar)),
		PublicPEM:  expandNewlines(r.Getenv(r.PublicVar)),
	}
	return m, len(m.PrivatePEM) > 0 || len(m.PublicPEM) > 0, nil
}

// FileResolver reads PEM material from the key directory.
type FileResolver struct {
	Dir string
}

func (r *FileResolver) Name() Source { return SourceFile }

func (r *FileResolver) Resolve() (Material, bool, error) {
	priv, err := readOptional(filepath.Join(r.Dir, PrivateKeyFile))
	if err != nil {
		return Material{}, false, err
	}
	pub, err := readOptional(filepath.Join(r.Dir, PublicKeyFile))
	if err != nil {
		return Material{}, false, err
	}

	m := Material{PrivatePEM: priv, PublicPEM: pub}
	return m, len(priv) > 0 || len(pub) > 0, nil
}

// write stores the pair with owner-only permissions on the private half.
// Each file is written to a temporary name first and renamed into place.
func (r *FileResolver) write(kp *KeyPair) error {
	if err := os.MkdirAll(r.Dir, 0o700); err != nil {
		return fmt.Errorf("keyx: create key dir: %w", err)
	}
	if err := writeAtomic(filepath.Join(r.Dir, PrivateKeyFile), kp.PrivatePEM, 0o600); err != nil {
		return err
	}
	return writeAtomic(filepath.Join(r.Dir, PublicKeyFile), kp.PublicPEM, 0o644)
}

func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("keyx: read %s: %w", path, err)
	}
	return data, nil
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("keyx: write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("keyx: write %s: %w", path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("keyx: chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("keyx: write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("keyx: rename %s: %w", path, err)
	}
	return nil
}

func expandNewlines(v string) []byte {
	if v == "" {
		return nil
	}
	return []byte(strings.ReplaceAll(v, `\n`, "\n"))
}
