// Package config loads CLI settings from an optional TOML or YAML file and
// the environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aussiebroadwan/dwolla/pkg/dwolla"
	"github.com/aussiebroadwan/dwolla/pkg/httpx"
)

// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

type Config struct {
	Key         string                `mapstructure:"key"`         // Required: application key (DWOLLA_KEY)
	Secret      string                `mapstructure:"secret"`      // Required: application secret (DWOLLA_SECRET)
	Environment string                `mapstructure:"environment"` // production or sandbox (default: production)
	APIURL      string                `mapstructure:"api_url"`     // Optional: custom API root, needs TokenURL
	TokenURL    string                `mapstructure:"token_url"`   // Optional: custom token endpoint, needs APIURL
	Timeout     time.Duration         `mapstructure:"timeout"`     // HTTP timeout (default: 30s)
	LogLevel    string                `mapstructure:"log_level"`   // debug, info, warn, error (default: warn)
	LogFormat   string                `mapstructure:"log_format"`  // json or text (default: text)
	RateLimit   httpx.RateLimitConfig `mapstructure:"ratelimit"`   // Optional: client side request budget
}

// ApplyDefaults fills unset fields. Called by Decode.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = string(dwolla.Production)
	}
	if c.Timeout <= 0 {
		c.Timeout = dwolla.DefaultTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// Setter is implemented by configs with defaults.
type Setter interface {
	ApplyDefaults()
}

// Decode decodes raw into the struct pointed to by c, then applies defaults
// when c implements Setter.
func Decode(raw map[string]any, c any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return err
	}

	if s, ok := c.(Setter); ok {
		s.ApplyDefaults()
	}
	return nil
}

// Load reads DWOLLA_CONFIG when set, then overlays the environment.
func Load() (Config, error) {
	raw := map[string]any{}
	if path := os.Getenv("DWOLLA_CONFIG"); path != "" {
		var err error
		if raw, err = ReadFile(path); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := Decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Key = getEnvOrDefault("DWOLLA_KEY", cfg.Key)
	cfg.Secret = getEnvOrDefault("DWOLLA_SECRET", cfg.Secret)
	cfg.Environment = getEnvOrDefault("DWOLLA_ENVIRONMENT", cfg.Environment)
	cfg.APIURL = getEnvOrDefault("DWOLLA_API_URL", cfg.APIURL)
	cfg.TokenURL = getEnvOrDefault("DWOLLA_TOKEN_URL", cfg.TokenURL)
	cfg.Timeout = getEnvDurationOrDefault("DWOLLA_TIMEOUT", cfg.Timeout)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.RateLimit = httpx.ParseRateLimitFromEnv("DWOLLA_RATELIMIT", cfg.RateLimit)

	return cfg, cfg.Validate()
}

// Validate checks the credentials and the environment selection.
func (c Config) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("DWOLLA_KEY: %w", dwolla.ErrMissingKey)
	}
	if c.Secret == "" {
		return fmt.Errorf("DWOLLA_SECRET: %w", dwolla.ErrMissingSecret)
	}
	if (c.APIURL == "") != (c.TokenURL == "") {
		return fmt.Errorf("DWOLLA_API_URL and DWOLLA_TOKEN_URL must be set together: %w", dwolla.ErrInvalidEnvironment)
	}
	if c.APIURL == "" && !dwolla.EnvironmentName(c.Environment).Valid() {
		return fmt.Errorf("DWOLLA_ENVIRONMENT %q: %w", c.Environment, dwolla.ErrInvalidEnvironment)
	}
	return nil
}

// EnvironmentSelector returns the custom URLs when set, else the named
// environment.
func (c Config) EnvironmentSelector() dwolla.EnvironmentSelector {
	if c.APIURL != "" {
		return dwolla.Environment{APIURL: strings.TrimSuffix(c.APIURL, "/"), TokenURL: c.TokenURL}
	}
	return dwolla.EnvironmentName(c.Environment)
}

// RateLimited reports whether a client side budget is configured.
func (c Config) RateLimited() bool {
	return c.RateLimit.RequestsPerWindow > 0 && c.RateLimit.Window > 0
}

// ReadFile parses a .toml, .yaml or .yml file into a generic map.
func ReadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	return raw, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "30s", "1m")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
