package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknote/pkg/config"
)

type sampleConfig struct {
	Host    string        `env:"SAMPLE_HOST" env-default:"localhost"`
	Port    int           `env:"SAMPLE_PORT" env-default:"8080"`
	Timeout time.Duration `env:"SAMPLE_TIMEOUT" env-default:"5s"`
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(config.EnvFileVariable, filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := config.Load[sampleConfig](context.Background(), "test")

	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SAMPLE_HOST=filehost\nSAMPLE_TIMEOUT=2s\n"), 0o600))
	t.Setenv(config.EnvFileVariable, path)
	t.Setenv("SAMPLE_PORT", "9090")
	t.Cleanup(func() {
		_ = os.Unsetenv("SAMPLE_HOST")
		_ = os.Unsetenv("SAMPLE_TIMEOUT")
	})

	cfg, err := config.Load[sampleConfig](context.Background(), "test")

	require.NoError(t, err)
	assert.Equal(t, "filehost", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestLoad_ProcessEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SAMPLE_HOST=filehost\n"), 0o600))
	t.Setenv(config.EnvFileVariable, path)
	t.Setenv("SAMPLE_HOST", "envhost")

	cfg, err := config.Load[sampleConfig](context.Background(), "test")

	require.NoError(t, err)
	assert.Equal(t, "envhost", cfg.Host)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv(config.EnvFileVariable, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SAMPLE_PORT", "not-a-number")

	cfg, err := config.Load[sampleConfig](context.Background(), "test")

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
