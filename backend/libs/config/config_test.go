package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	HTTP struct {
		Port string `yaml:"port" env:"TEST_HTTP_PORT"`
	} `yaml:"http"`
	Redis struct {
		Addr string        `yaml:"addr"`
		TTL  time.Duration `yaml:"ttl"`
	} `yaml:"redis"`
	Origins []string `yaml:"origins" env:"TEST_ORIGINS"`
	Debug   bool     `yaml:"debug" env:"TEST_DEBUG"`
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv(defaultConfigPathEnv, "")
	t.Setenv(dotenvPathEnv, "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfigRejectsNonPointer(t *testing.T) {
	isolateEnv(t)

	require.Error(t, LoadConfig(nil))
	require.Error(t, LoadConfig(testConfig{}))
}

func TestLoadConfigYAMLThenEnvOverride(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: \"9000\"\nredis:\n  addr: cache:6379\n  ttl: 90s\n"), 0o600))
	t.Setenv(defaultConfigPathEnv, path)
	t.Setenv("TEST_HTTP_PORT", "9100")
	t.Setenv("REDIS_TTL", "2m")
	t.Setenv("TEST_ORIGINS", "http://a.local, http://b.local,")

	var cfg testConfig
	require.NoError(t, LoadConfig(&cfg))

	assert.Equal(t, "9100", cfg.HTTP.Port)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Origins)
}

func TestLoadConfigReadsDotenvWithoutOverridingProcessEnv(t *testing.T) {
	isolateEnv(t)

	require.NoError(t, os.WriteFile(".env", []byte("TEST_DEBUG=true\nTEST_HTTP_PORT=7000\n"), 0o600))
	t.Setenv("TEST_HTTP_PORT", "7100")
	t.Cleanup(func() { _ = os.Unsetenv("TEST_DEBUG") })

	var cfg testConfig
	require.NoError(t, LoadConfig(&cfg))

	assert.True(t, cfg.Debug)
	assert.Equal(t, "7100", cfg.HTTP.Port)
}

func TestLoadConfigExplicitDotenvMustExist(t *testing.T) {
	isolateEnv(t)
	t.Setenv(dotenvPathEnv, filepath.Join(t.TempDir(), "missing.env"))

	var cfg testConfig
	err := LoadConfig(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load dotenv")
}

func TestLoadConfigReportsParseErrors(t *testing.T) {
	isolateEnv(t)
	t.Setenv("TEST_DEBUG", "maybe")

	var cfg testConfig
	err := LoadConfig(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_DEBUG")
}
