// Package config loads sangga settings from built-in defaults, an optional
// JSON5 file, a .env file and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName        = "sangga"
	ConfigFileName = "config.json"
	DotenvFileName = ".env"
)

// Default values.
const (
	DefaultAddr        = ":8080"
	DefaultModel       = "gemini-3-pro-preview"
	DefaultRateLimit   = 0.2
	DefaultRateBurst   = 3
	DefaultSessionIdle = 2 * time.Hour
	DefaultLogLevel    = "info"
	DefaultFluentPort  = 24224
	DefaultFluentTag   = "sangga"
)

// Config holds settings shared by all commands. The API key is never read
// from or written to the config file.
type Config struct {
	APIKey string `json:"-"`

	Model string `json:"model"`
	Addr  string `json:"addr"`

	// RateLimit is the number of searches per second allowed for one
	// session or API client. Zero disables limiting.
	RateLimit float64 `json:"rate_limit"`
	RateBurst int     `json:"rate_burst"`

	// SessionIdle is how long an untouched session lives, as a Go
	// duration string such as "90m".
	SessionIdle    string   `json:"session_idle"`
	AllowedOrigins []string `json:"allowed_origins"`
	SecureCookies  bool     `json:"secure_cookies"`

	LogLevel string `json:"log_level"`

	// FluentHost enables log forwarding to Fluent Bit when set.
	FluentHost string `json:"fluent_host"`
	FluentPort int    `json:"fluent_port"`
	FluentTag  string `json:"fluent_tag"`
}

// Idle returns SessionIdle parsed as a duration, falling back to
// DefaultSessionIdle when it is empty or malformed.
func (c Config) Idle() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.SessionIdle))
	if err != nil || d <= 0 {
		return DefaultSessionIdle
	}
	return d
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Model:       DefaultModel,
		Addr:        DefaultAddr,
		RateLimit:   DefaultRateLimit,
		RateBurst:   DefaultRateBurst,
		SessionIdle: DefaultSessionIdle.String(),
		LogLevel:    DefaultLogLevel,
		FluentPort:  DefaultFluentPort,
		FluentTag:   DefaultFluentTag,
	}
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

// ConfigPath returns SANGGA_CONFIG if set, otherwise config.json in the
// user config directory.
func ConfigPath() (string, error) {
	if path := strings.TrimSpace(os.Getenv("SANGGA_CONFIG")); path != "" {
		return path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// LoadDotenv loads variables from the given .env files into the process
// environment. Missing files are skipped and variables already set win.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DotenvFileName}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Load returns the defaults overlaid with the config file at path and then
// the environment. An empty path selects ConfigPath. A missing or empty
// file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			applyEnv(&cfg)
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, err
	case len(strings.TrimSpace(string(data))) > 0:
		if err := json5.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.APIKey = envString("GEMINI_API_KEY", cfg.APIKey)
	cfg.Model = envString("SANGGA_MODEL", cfg.Model)
	cfg.Addr = envString("SANGGA_ADDR", cfg.Addr)
	cfg.RateLimit = envFloat("SANGGA_RATE_LIMIT", cfg.RateLimit)
	cfg.RateBurst = envInt("SANGGA_RATE_BURST", cfg.RateBurst)
	cfg.SessionIdle = envString("SANGGA_SESSION_IDLE", cfg.SessionIdle)
	if origins := envString("SANGGA_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = splitCSV(origins)
	}
	cfg.LogLevel = envString("SANGGA_LOG_LEVEL", cfg.LogLevel)
	cfg.FluentHost = envString("SANGGA_FLUENT_HOST", cfg.FluentHost)
	cfg.FluentPort = envInt("SANGGA_FLUENT_PORT", cfg.FluentPort)
	cfg.FluentTag = envString("SANGGA_FLUENT_TAG", cfg.FluentTag)
}

// Init writes a default config file at path if it doesn't already exist
// and returns the path of the file it created, or "" if one was already
// there. An empty path selects ConfigPath.
func Init(path string) (string, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return "", err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if err := writeConfig(path, DefaultConfig()); err != nil {
		return "", err
	}
	return path, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
