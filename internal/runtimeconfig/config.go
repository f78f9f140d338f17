package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

var ErrLoggingProviderUnknown = errors.New("sites config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("sites config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sites config: logging format is invalid")
var ErrCacheTTLInvalid = errors.New("sites config: cache default TTL must be zero or positive")

// Config aggregates feature flags and adapter bindings for the sites module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled bool
	Storage StorageConfig
	Cache   CacheConfig
	Logging LoggingConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures cache behaviour toggles. The capability check happens
// once at container construction: when disabled, no cache provider is wired
// and the site service runs entirely against the repository.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the runtime defaults used when a host supplies a
// zero-value configuration.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "", "console", "noop", "gologger":
	default:
		return ErrLoggingProviderUnknown
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}
	return nil
}
