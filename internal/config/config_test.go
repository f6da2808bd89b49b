package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dwolla/internal/config"
	"github.com/aussiebroadwan/dwolla/pkg/dwolla"
)

// clearEnv blanks every variable Load reads so the host cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DWOLLA_CONFIG", "DWOLLA_KEY", "DWOLLA_SECRET", "DWOLLA_ENVIRONMENT",
		"DWOLLA_API_URL", "DWOLLA_TOKEN_URL", "DWOLLA_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
		"DWOLLA_RATELIMIT_REQUESTS", "DWOLLA_RATELIMIT_WINDOW_SEC", "DWOLLA_RATELIMIT_BURST",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DWOLLA_KEY", "key")
	t.Setenv("DWOLLA_SECRET", "secret")
	t.Setenv("DWOLLA_ENVIRONMENT", "sandbox")
	t.Setenv("DWOLLA_TIMEOUT", "5")
	t.Setenv("DWOLLA_RATELIMIT_REQUESTS", "10")
	t.Setenv("DWOLLA_RATELIMIT_WINDOW_SEC", "1")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "key", cfg.Key)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.True(t, cfg.RateLimited())
	require.Equal(t, 10, cfg.RateLimit.RequestsPerWindow)
	require.Equal(t, dwolla.Sandbox, cfg.EnvironmentSelector())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DWOLLA_KEY", "key")
	t.Setenv("DWOLLA_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, string(dwolla.Production), cfg.Environment)
	require.Equal(t, dwolla.DefaultTimeout, cfg.Timeout)
	require.False(t, cfg.RateLimited())
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "dwolla.toml",
			content: `key = "file-key"
secret = "file-secret"
environment = "sandbox"
timeout = "10s"

[ratelimit]
requests = 50
window = "1m"
burst = 5
`,
		},
		{
			name: "yaml",
			file: "dwolla.yaml",
			content: `key: file-key
secret: file-secret
environment: sandbox
timeout: 10s
ratelimit:
  requests: 50
  window: 1m
  burst: 5
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DWOLLA_CONFIG", writeFile(t, tt.file, tt.content))
			t.Setenv("DWOLLA_SECRET", "env-secret")

			cfg, err := config.Load()
			require.NoError(t, err)
			require.Equal(t, "file-key", cfg.Key)
			require.Equal(t, "env-secret", cfg.Secret)
			require.Equal(t, "sandbox", cfg.Environment)
			require.Equal(t, 10*time.Second, cfg.Timeout)
			require.Equal(t, 50, cfg.RateLimit.RequestsPerWindow)
			require.Equal(t, time.Minute, cfg.RateLimit.Window)
			require.Equal(t, 5, cfg.RateLimit.Burst)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DWOLLA_SECRET", "secret")
		_, err := config.Load()
		require.ErrorIs(t, err, dwolla.ErrMissingKey)
	})

	t.Run("unknown environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DWOLLA_KEY", "key")
		t.Setenv("DWOLLA_SECRET", "secret")
		t.Setenv("DWOLLA_ENVIRONMENT", "staging")
		_, err := config.Load()
		require.ErrorIs(t, err, dwolla.ErrInvalidEnvironment)
	})

	t.Run("half a custom environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DWOLLA_KEY", "key")
		t.Setenv("DWOLLA_SECRET", "secret")
		t.Setenv("DWOLLA_API_URL", "http://localhost:8080")
		_, err := config.Load()
		require.ErrorIs(t, err, dwolla.ErrInvalidEnvironment)
	})

	t.Run("unsupported file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DWOLLA_CONFIG", writeFile(t, "dwolla.ini", "key=x"))
		_, err := config.Load()
		require.ErrorIs(t, err, config.ErrUnsupportedFormat)
	})
}

func TestCustomEnvironment(t *testing.T) {
	cfg := config.Config{
		Key:      "key",
		Secret:   "secret",
		APIURL:   "http://localhost:8080/",
		TokenURL: "http://localhost:8080/token",
	}
	require.NoError(t, cfg.Validate())
	require.Equal(t, dwolla.Environment{
		APIURL:   "http://localhost:8080",
		TokenURL: "http://localhost:8080/token",
	}, cfg.EnvironmentSelector())
}
