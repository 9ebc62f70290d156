package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknote/internal/gateway/config"
	pkgconfig "quicknote/pkg/config"
	"quicknote/pkg/logger"
)

func noEnvFile(t *testing.T) {
	t.Helper()
	t.Setenv(pkgconfig.EnvFileVariable, filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoad_Defaults(t *testing.T) {
	noEnvFile(t)
	t.Setenv("QUICKNOTE_JWT_SECRET_KEY", "secret")

	cfg, err := config.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.GetAddress())
	assert.Equal(t, 15*time.Minute, cfg.Redis.DefaultTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.ToClientConfig().Addr())
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.True(t, cfg.Notes.WriteRequiresAuth)
	assert.True(t, cfg.Limiter.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Shutdown.Timeout)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
}

func TestLoad_Overrides(t *testing.T) {
	noEnvFile(t)
	t.Setenv("QUICKNOTE_JWT_SECRET_KEY", "secret")
	t.Setenv("QUICKNOTE_HTTP_PORT", "9090")
	t.Setenv("QUICKNOTE_REDIS_DEFAULT_TTL", "30s")
	t.Setenv("QUICKNOTE_NOTES_WRITE_REQUIRES_AUTH", "false")
	t.Setenv("QUICKNOTE_LOGGER_MODE", "development")
	t.Setenv("QUICKNOTE_GOOGLE_CLIENT_ID", "client-id")

	cfg, err := config.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.Redis.DefaultTTL)
	assert.False(t, cfg.Notes.WriteRequiresAuth)
	assert.Equal(t, "client-id", cfg.Google.ClientID)
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
}

func TestLoad_MissingSecret(t *testing.T) {
	noEnvFile(t)
	t.Setenv("QUICKNOTE_JWT_SECRET_KEY", "")
	require.NoError(t, os.Unsetenv("QUICKNOTE_JWT_SECRET_KEY"))

	_, err := config.Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrFailedLoadConfig)
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := config.PostgresConfig{
		Host: "db", Port: 5432, User: "app", Password: "p@ss", Database: "quicknote", SSLMode: "disable",
	}

	assert.Equal(t, "host=db port=5432 user=app password=p@ss dbname=quicknote sslmode=disable", cfg.GetDSN())
	assert.Equal(t, "postgres://app:p%40ss@db:5432/quicknote?sslmode=disable", cfg.GetConnectionURL())
}
