package keyx

import (
	"crypto/rsa"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/aussiebroadwan/tunnelhub/pkg/cryptox"
)

// Mode selects whether generated keys are written to disk.
type Mode string

const (
	// ModeEphemeral keeps generated keys in memory only. Used on serverless
	// platforms without a writable, durable filesystem.
	ModeEphemeral Mode = "ephemeral"
	// ModePersistent also writes generated keys to the key directory.
	ModePersistent Mode = "persistent"
)

// DefaultMode picks ephemeral storage on known serverless platforms and
// persistent storage everywhere else.
func DefaultMode(getenv func(string) string) Mode {
	if getenv("VERCEL") == "1" || getenv("AWS_LAMBDA_FUNCTION_VERSION") != "" {
		return ModeEphemeral
	}
	return ModePersistent
}

// Options configures a Manager.
type Options struct {
	Mode   Mode
	Dir    string
	Env    *EnvResolver
	Logger *slog.Logger
}

// Manager guarantees a usable key pair is available and hands out public
// material freely while keeping the private key in process.
//
// Readers always observe a complete pair: the active pair is swapped with a
// single atomic store. EnsureKeys and Generate are serialised.
type Manager struct {
	mode   Mode
	logger *slog.Logger

	current atomic.Pointer[KeyPair]
	mu      sync.Mutex

	env   *EnvResolver
	files *FileResolver

	// fallbacks are consulted in order when nothing is held in memory.
	fallbacks []Resolver
}

// NewManager creates a Manager. No key material is loaded until EnsureKeys,
// PublicKeyPEM or PrivateKey is called.
func NewManager(opts Options) *Manager {
	if opts.Mode == "" {
		opts.Mode = ModePersistent
	}
	if opts.Dir == "" {
		opts.Dir = "keys"
	}
	if opts.Env == nil {
		opts.Env = NewEnvResolver()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	m := &Manager{
		mode:   opts.Mode,
		logger: opts.Logger,
		env:    opts.Env,
		files:  &FileResolver{Dir: opts.Dir},
	}
	m.fallbacks = []Resolver{m.env, m.files}
	return m
}

// Mode returns the configured storage mode.
func (m *Manager) Mode() Mode {
	return m.mode
}

// Current returns the pair held in memory, or nil if none has been adopted.
func (m *Manager) Current() *KeyPair {
	return m.current.Load()
}

// EnsureKeys makes sure a key pair is held in memory. It is idempotent.
//
// An in-memory pair wins. Otherwise a complete and consistent pair from the
// environment is adopted, then (persistent mode only) a pair already on disk.
// Failing all of those a new pair of the given size is generated.
func (m *Manager) EnsureKeys(bits int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.Load() != nil {
		return nil
	}

	if kp := m.adopt(m.env); kp != nil {
		m.current.Store(kp)
		m.logger.Info("using RSA keys from environment", "bits", kp.Bits)
		return nil
	}

	if m.mode == ModePersistent {
		if kp := m.adopt(m.files); kp != nil {
			m.current.Store(kp)
			m.logger.Info("using RSA keys from key directory", "dir", m.files.Dir, "bits", kp.Bits)
			return nil
		}
	}

	_, err := m.generateLocked(bits)
	return err
}

// Generate creates a fresh pair and makes it active, replacing any pair
// currently held. In persistent mode the key files are overwritten.
func (m *Manager) Generate(bits int) (*KeyPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.generateLocked(bits)
}

func (m *Manager) generateLocked(bits int) (*KeyPair, error) {
	kp, err := GenerateKeyPair(bits)
	if err != nil {
		return nil, err
	}

	if m.mode == ModePersistent {
		if err := m.files.write(kp); err != nil {
			m.logger.Warn("could not persist RSA keys, keeping them in memory only",
				"dir", m.files.Dir,
				"error", err,
			)
		} else {
			kp.Source = SourceFile
		}
	}

	m.current.Store(kp)
	m.logger.Info("generated RSA key pair", "bits", kp.Bits, "mode", string(m.mode), "source", string(kp.Source))
	return kp, nil
}

// adopt returns a validated pair from r, or nil when r has nothing usable.
func (m *Manager) adopt(r Resolver) *KeyPair {
	mat, found, err := r.Resolve()
	if err != nil {
		m.logger.Warn("failed to read key material", "source", string(r.Name()), "error", err)
		return nil
	}
	if !found {
		return nil
	}

	kp, err := ParseKeyPair(mat, r.Name())
	if err != nil {
		m.logger.Warn("ignoring unusable key material", "source", string(r.Name()), "error", err)
		return nil
	}
	return kp
}

// PublicKeyPEM returns the public key in SubjectPublicKeyInfo PEM form along
// with its size in bits, trying memory, environment and file in that order.
// When a tier holds a private key the public half is derived from it.
func (m *Manager) PublicKeyPEM() ([]byte, int, error) {
	if kp := m.current.Load(); kp != nil {
		return kp.PublicPEM, kp.Bits, nil
	}

	for _, r := range m.fallbacks {
		mat, found, err := r.Resolve()
		if err != nil || !found {
			continue
		}

		if len(mat.PrivatePEM) > 0 {
			if priv, err := cryptox.ParsePrivateKeyPEM(mat.PrivatePEM); err == nil {
				pub, err := cryptox.MarshalPublicKeyPEM(&priv.PublicKey)
				if err == nil {
					return pub, priv.N.BitLen(), nil
				}
			}
		}

		if len(mat.PublicPEM) > 0 {
			if pub, err := cryptox.ParsePublicKeyPEM(mat.PublicPEM); err == nil {
				return mat.PublicPEM, pub.N.BitLen(), nil
			}
		}
	}

	return nil, 0, ErrKeyUnavailable
}

// PrivateKey returns the private key, trying memory, environment and file in
// that order.
func (m *Manager) PrivateKey() (*rsa.PrivateKey, error) {
	if kp := m.current.Load(); kp != nil {
		return kp.PrivateKey(), nil
	}

	var errs []error
	for _, r := range m.fallbacks {
		mat, found, err := r.Resolve()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !found || len(mat.PrivatePEM) == 0 {
			continue
		}

		priv, err := cryptox.ParsePrivateKeyPEM(mat.PrivatePEM)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return priv, nil
	}

	if len(errs) > 0 {
		m.logger.Warn("no usable private key", "error", errors.Join(errs...))
	}
	return nil, ErrKeyUnavailable
}
