package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/sangga/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment does
// not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "SANGGA_CONFIG", "SANGGA_MODEL", "SANGGA_ADDR",
		"SANGGA_RATE_LIMIT", "SANGGA_RATE_BURST", "SANGGA_SESSION_IDLE",
		"SANGGA_ALLOWED_ORIGINS", "SANGGA_LOG_LEVEL", "SANGGA_FLUENT_HOST",
		"SANGGA_FLUENT_PORT", "SANGGA_FLUENT_TAG",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when file is missing", func(t *testing.T) {
		clearEnv(t)

		cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.json"))

		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig(), cfg)
	})

	t.Run("returns defaults for empty file", func(t *testing.T) {
		clearEnv(t)

		cfg, err := config.Load(writeFile(t, "  \n"))

		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig(), cfg)
	})

	t.Run("reads JSON5 with comments and trailing commas", func(t *testing.T) {
		clearEnv(t)

		path := writeFile(t, `{
  // listen on localhost only
  addr: "127.0.0.1:9000",
  model: "gemini-2.5-flash",
  rate_limit: 1.5,
  allowed_origins: ["https://example.com",],
}`)

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
		assert.Equal(t, "gemini-2.5-flash", cfg.Model)
		assert.InDelta(t, 1.5, cfg.RateLimit, 0.0001)
		assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins)
		assert.Equal(t, config.DefaultRateBurst, cfg.RateBurst)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "secret")
		t.Setenv("SANGGA_ADDR", ":7000")
		t.Setenv("SANGGA_RATE_BURST", "9")
		t.Setenv("SANGGA_ALLOWED_ORIGINS", "https://a.example, https://b.example")

		cfg, err := config.Load(writeFile(t, `{addr: ":9000", rate_burst: 5}`))

		require.NoError(t, err)
		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, ":7000", cfg.Addr)
		assert.Equal(t, 9, cfg.RateBurst)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	})

	t.Run("ignores malformed numeric environment values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SANGGA_RATE_LIMIT", "fast")

		cfg, err := config.Load(writeFile(t, `{rate_limit: 2}`))

		require.NoError(t, err)
		assert.InDelta(t, 2.0, cfg.RateLimit, 0.0001)
	})

	t.Run("SANGGA_CONFIG selects the file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SANGGA_CONFIG", writeFile(t, `{model: "from-env-path"}`))

		cfg, err := config.Load("")

		require.NoError(t, err)
		assert.Equal(t, "from-env-path", cfg.Model)
	})

	t.Run("returns error for invalid file", func(t *testing.T) {
		clearEnv(t)

		_, err := config.Load(writeFile(t, `{addr: `))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})
}

func TestConfig_Idle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 90*time.Minute, config.Config{SessionIdle: "90m"}.Idle())
	assert.Equal(t, config.DefaultSessionIdle, config.Config{}.Idle())
	assert.Equal(t, config.DefaultSessionIdle, config.Config{SessionIdle: "soon"}.Idle())
	assert.Equal(t, config.DefaultSessionIdle, config.Config{SessionIdle: "-1h"}.Idle())
}

func TestLoadDotenv(t *testing.T) {
	t.Run("sets unset variables and keeps existing ones", func(t *testing.T) {
		t.Setenv("SANGGA_TEST_EXISTING", "kept")
		t.Setenv("SANGGA_TEST_NEW", "")
		require.NoError(t, os.Unsetenv("SANGGA_TEST_NEW"))

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("SANGGA_TEST_EXISTING=replaced\nSANGGA_TEST_NEW=loaded\n"), 0o644))

		require.NoError(t, config.LoadDotenv(path))

		assert.Equal(t, "kept", os.Getenv("SANGGA_TEST_EXISTING"))
		assert.Equal(t, "loaded", os.Getenv("SANGGA_TEST_NEW"))
	})

	t.Run("skips missing files", func(t *testing.T) {
		err := config.LoadDotenv(filepath.Join(t.TempDir(), ".env"))

		assert.NoError(t, err)
	})
}

func TestInit(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SANGGA_CONFIG", "")

	path, err := config.Init("")
	require.NoError(t, err)
	require.NotEmpty(t, path)
	want, err := config.ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, want, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var written map[string]any
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, config.DefaultAddr, written["addr"])
	assert.NotContains(t, written, "APIKey")

	again, err := config.Init("")
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestInit_HonorsConfigEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	custom := filepath.Join(t.TempDir(), "nested", "sangga.json")
	t.Setenv("SANGGA_CONFIG", custom)

	path, err := config.Init("")

	require.NoError(t, err)
	assert.Equal(t, custom, path)
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAddr, cfg.Addr, "Load reads the file Init wrote")
	_, err = os.Stat(custom)
	assert.NoError(t, err)
}

func TestInit_ExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")

	created, err := config.Init(path)
	require.NoError(t, err)
	assert.Equal(t, path, created)

	again, err := config.Init(path)
	require.NoError(t, err)
	assert.Empty(t, again)
}
