package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// unsetEnv clears the variables Load reads so the host environment cannot leak in
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PORT", "LOG_LEVEL", "GIN_MODE", "REDIS_ADDR", "STORE_PREFIX", "REST_API_URL",
		"GROWLOOP_API_URL", "HTTP_TIMEOUT", "DEMO_TOKEN_SECRET", "LISTINGS_DSN",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

// chdir switches the working directory for the test and restores it afterwards
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.False(t, cfg.UsesRedis())
	require.False(t, cfg.UsesPostgres())
}

func TestLoad_FileThenEnv(t *testing.T) {
	unsetEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "refashion.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
redis_addr: localhost:6379
http_timeout: 5s
store_prefix: from-file
`), 0o644))

	t.Setenv("STORE_PREFIX", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.True(t, cfg.UsesRedis())
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Equal(t, "from-env", cfg.StorePrefix)
}

func TestLoad_DotEnv(t *testing.T) {
	unsetEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LISTINGS_DSN=host=db user=app\nHTTP_TIMEOUT=12\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "host=db user=app", cfg.ListingsDSN)
	require.True(t, cfg.UsesPostgres())
	require.Equal(t, 12*time.Second, cfg.HTTPTimeout)

	// godotenv sets real variables; drop them for the remaining tests
	require.NoError(t, os.Unsetenv("LISTINGS_DSN"))
	require.NoError(t, os.Unsetenv("HTTP_TIMEOUT"))
}

func TestLoad_Errors(t *testing.T) {
	unsetEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("port: [unterminated"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)

	t.Setenv("HTTP_TIMEOUT", "soon")
	_, err = Load("")
	require.Error(t, err)
}
