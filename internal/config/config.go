package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when a variable is unset.
const (
	DefaultAddr            = ":8080"
	DefaultPageIdleTTL     = 30 * time.Minute
	DefaultSubmitRateLimit = 30

	devSessionSecret = "authpanel-dev-session-secret-change-me"
)

// ErrInvalid reports a malformed configuration value.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all configuration for the application.
type Config struct {
	Addr            string
	SessionSecret   string
	LogFormat       string
	LogLevel        string
	StaticDir       string
	PageIdleTTL     time.Duration
	SubmitRateLimit int

	// DevSecret is set when SESSION_SECRET was empty and the built-in
	// development secret is in use.
	DevSecret bool
	// EnvFile is set when a .env file was loaded.
	EnvFile bool
}

// Load reads an optional .env file, then the environment. Nothing is logged
// here since logging is configured from the result; call LogSummary after.
func Load() (*Config, error) {
	loaded := godotenv.Load() == nil
	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = loaded
	return cfg, nil
}

// LogSummary reports how the configuration was obtained.
func (c *Config) LogSummary(logger *slog.Logger) {
	if !c.EnvFile {
		logger.Debug("No .env file found, relying on environment variables")
	}
	if c.DevSecret {
		logger.Warn("SESSION_SECRET is not set, using an insecure development secret")
	}
}

// FromEnv builds a Config from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Addr:            get("APP_ADDR", DefaultAddr),
		SessionSecret:   get("SESSION_SECRET", ""),
		LogFormat:       get("LOG_FORMAT", "text"),
		LogLevel:        get("LOG_LEVEL", "info"),
		StaticDir:       get("STATIC_DIR", ""),
		PageIdleTTL:     DefaultPageIdleTTL,
		SubmitRateLimit: DefaultSubmitRateLimit,
	}

	if raw := get("PAGE_IDLE_TTL", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: PAGE_IDLE_TTL %q", ErrInvalid, raw)
		}
		cfg.PageIdleTTL = d
	}
	if raw := get("SUBMIT_RATE_LIMIT", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: SUBMIT_RATE_LIMIT %q", ErrInvalid, raw)
		}
		cfg.SubmitRateLimit = n
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = devSessionSecret
		cfg.DevSecret = true
	}
	return cfg, nil
}
