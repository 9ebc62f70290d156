// Package config содержит конфигурацию сервиса QuickNote.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "quicknote/pkg/config"
	"quicknote/pkg/logger"
)

// ServiceName - имя сервиса в логах.
const ServiceName = "quicknote"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigLoaded     = "configuration loaded"
	ErrFailedLoadConfig = "failed to load configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Google   GoogleConfig   `yaml:"google"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	Limiter  LimiterConfig  `yaml:"limiter"`
	Notes    NotesConfig    `yaml:"notes"`
}

// Load загружает конфигурацию из dotenv файла и переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.String("redis_address", cfg.Redis.ToClientConfig().Addr()),
		zap.Duration("cache_ttl", cfg.Redis.DefaultTTL),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Bool("notes_write_requires_auth", cfg.Notes.WriteRequiresAuth),
		zap.Bool("google_configured", cfg.Google.ClientID != ""))

	return cfg, nil
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "development" {
		return logger.Development
	}
	return logger.Production
}
