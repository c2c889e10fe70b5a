package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/tunnelhub/pkg/cryptox"
	"github.com/aussiebroadwan/tunnelhub/pkg/httpx"
	"github.com/aussiebroadwan/tunnelhub/pkg/keyx"
	"github.com/aussiebroadwan/tunnelhub/pkg/relay"
)

// DefaultAdminPassword is used when neither ADMIN_PASSWORD nor
// ADMIN_PASSWORD_HASH is set. Startup logs a warning when it is in effect.
const DefaultAdminPassword = "admin123"

// Name store drivers.
const (
	NameStoreMemory = "memory"
	NameStoreSQLite = "sqlite"
	NameStoreRedis  = "redis"
)

type Config struct {
	AdminPassword     string // Admin password in plaintext or as an Argon2id hash (default: admin123)
	AdminPasswordHash string // Optional: Argon2id PHC hash; takes precedence over AdminPassword

	RSAKeySize     int       // RSA modulus size in bits (default: 2048)
	KeyStorageMode keyx.Mode // ephemeral or persistent (default: persistent unless serverless)
	KeysDir        string    // Directory for persisted PEM files (default: keys)

	RateLimitRPM   int      // Requests per minute per client (default: 120)
	MaxRequestSize int64    // Maximum request body in bytes (default: 5 MiB)
	TrustedProxies []string // CIDRs whose forwarding headers are believed
	CORSOrigins    []string // Allowed CORS origins; empty disables CORS

	SessionTTL          time.Duration // Session lifetime; 0 means sessions never expire
	AutoRefreshInterval int           // Dashboard auto-refresh in seconds (default: 5)

	Users     string // Inline users list (JSON or YAML)
	UsersFile string // Path to a users file (JSON or YAML); takes precedence over Users

	NameStore     string // memory, sqlite or redis (default: memory)
	DatabaseFile  string // SQLite file for the sqlite name store (default: tunnelhub.db)
	RedisAddr     string // Redis address for the redis name store (default: localhost:6379)
	RedisUsername string
	RedisPassword string
	RedisDB       int

	RelayTimeout time.Duration // Per-request timeout against the relay API (default: 10s)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port, 0 picks a free port (default: 8000)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 5m)
}

func LoadConfig() Config {
	cfg := Config{
		AdminPassword:     getEnvOrDefault("ADMIN_PASSWORD", DefaultAdminPassword),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		RSAKeySize:     getEnvIntOrDefault("RSA_KEY_SIZE", keyx.DefaultBits),
		KeyStorageMode: keyx.Mode(getEnvOrDefault("KEY_STORAGE_MODE", string(keyx.DefaultMode(os.Getenv)))),
		KeysDir:        getEnvOrDefault("KEYS_DIR", "keys"),

		RateLimitRPM:   getEnvIntOrDefault("RATE_LIMIT_RPM", httpx.DefaultRequestsPerMinute),
		MaxRequestSize: int64(getEnvIntOrDefault("MAX_REQUEST_SIZE", int(httpx.DefaultMaxBodyBytes))),
		TrustedProxies: getEnvListOrDefault("TRUSTED_PROXIES", nil),
		CORSOrigins:    getEnvListOrDefault("CORS_ORIGINS", nil),

		SessionTTL:          getEnvDurationOrDefault("SESSION_TTL", 0),
		AutoRefreshInterval: getEnvIntOrDefault("AUTO_REFRESH_INTERVAL", 5),

		Users:     os.Getenv("USERS"),
		UsersFile: os.Getenv("USERS_FILE"),

		NameStore:     getEnvOrDefault("NAME_STORE", NameStoreMemory),
		DatabaseFile:  getEnvOrDefault("DATABASE_FILE", "tunnelhub.db"),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),

		RelayTimeout: getEnvDurationOrDefault("RELAY_TIMEOUT", relay.DefaultTimeout),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8000),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 5*time.Minute),
	}

	return cfg
}

// Validate reports configuration that would prevent startup.
func (cfg Config) Validate() error {
	var errs []error

	if cfg.RSAKeySize < cryptox.MinRSABits {
		errs = append(errs, fmt.Errorf("RSA_KEY_SIZE must be at least %d, got %d", cryptox.MinRSABits, cfg.RSAKeySize))
	}
	switch cfg.KeyStorageMode {
	case keyx.ModeEphemeral, keyx.ModePersistent:
	default:
		errs = append(errs, fmt.Errorf("KEY_STORAGE_MODE must be ephemeral or persistent, got %q", cfg.KeyStorageMode))
	}
	if cfg.RateLimitRPM <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPM must be positive, got %d", cfg.RateLimitRPM))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Errorf("MAX_REQUEST_SIZE must be positive, got %d", cfg.MaxRequestSize))
	}
	if cfg.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must not be negative, got %s", cfg.SessionTTL))
	}
	switch cfg.NameStore {
	case NameStoreMemory, NameStoreSQLite, NameStoreRedis:
	default:
		errs = append(errs, fmt.Errorf("NAME_STORE must be memory, sqlite or redis, got %q", cfg.NameStore))
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", cfg.Port))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma-separated variable, dropping blanks.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
