package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	assert.Equal(t, DefaultHost, cfg.Host())
	assert.Equal(t, DefaultPort, cfg.Port())
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, DefaultSearchLimit, cfg.SearchLimit())
	assert.Equal(t, DefaultHashWorkers, cfg.HashWorkers())
	assert.Equal(t, LogFormatPretty, cfg.LogFormat())
	assert.Contains(t, cfg.DBURL(), "sqlite:///")
	assert.Contains(t, cfg.DBURL(), "monolog.db")
}

func TestAppConfig_Options(t *testing.T) {
	cfg := NewAppConfigWithOptions(
		WithHost("127.0.0.1"),
		WithPort(9000),
		WithLogLevel("DEBUG"),
		WithLogFormat(LogFormatJSON),
		WithSearchLimit(5),
		WithBrandFile("/etc/brands.yaml"),
	)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, "DEBUG", cfg.LogLevel())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, 5, cfg.SearchLimit())
	assert.Equal(t, "/etc/brands.yaml", cfg.BrandFile())
}

func TestWithDataDir_MovesDefaultDBURL(t *testing.T) {
	dir := t.TempDir()
	cfg := NewAppConfigWithOptions(WithDataDir(dir))

	assert.Equal(t, dir, cfg.DataDir())
	assert.Equal(t, "sqlite:///"+filepath.Join(dir, "monolog.db"), cfg.DBURL())
}

func TestWithDataDir_KeepsExplicitDBURL(t *testing.T) {
	cfg := NewAppConfigWithOptions(
		WithDBURL("postgres://localhost/catalog"),
		WithDataDir(t.TempDir()),
	)

	assert.Equal(t, "postgres://localhost/catalog", cfg.DBURL())
}

func TestAppConfig_Apply_ReturnsCopy(t *testing.T) {
	base := NewAppConfig()
	changed := base.Apply(WithPort(9999))

	assert.Equal(t, DefaultPort, base.Port())
	assert.Equal(t, 9999, changed.Port())
}

func TestEnsureDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := NewAppConfigWithOptions(WithDataDir(dir))

	require.NoError(t, cfg.EnsureDataDir())
	assert.DirExists(t, dir)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HOST", "10.0.0.1")
	t.Setenv("PORT", "8888")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SEARCH_LIMIT", "7")

	envCfg, err := LoadFromEnv()
	require.NoError(t, err)

	cfg := envCfg.ToAppConfig()
	assert.Equal(t, "10.0.0.1:8888", cfg.Addr())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, 7, cfg.SearchLimit())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	// Snapshot the variables the .env file will set so the test leaves
	// the environment clean.
	for _, key := range []string{"PORT", "LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=7777\nLOG_LEVEL=DEBUG\n"), 0o644))

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Port())
	assert.Equal(t, "DEBUG", cfg.LogLevel())
}

func TestLoadConfig_MissingDotEnvIsFine(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port())
}
