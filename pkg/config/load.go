// Package config предоставляет функциональность для загрузки конфигурации из переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"quicknote/pkg/logger"
)

// EnvFileVariable - переменная окружения с путем к dotenv файлу.
const EnvFileVariable = "QUICKNOTE_ENV_FILE"

const (
	defaultEnvFile = ".env"

	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded successfully"
	msgEnvFileSkipped       = "env file not found, using process environment"

	errFailedReadEnvFile       = "failed to read env file"
	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load читает dotenv файл (если он есть) и заполняет структуру T по тегам cleanenv.
// Значения из окружения процесса имеют приоритет над значениями из файла.
func Load[T any](ctx context.Context, serviceName string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	envPath := os.Getenv(EnvFileVariable)
	if envPath == "" {
		envPath = defaultEnvFile
	}

	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, envPath))

	if err := godotenv.Load(envPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Error(ctx, errFailedReadEnvFile, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errFailedReadEnvFile, err)
		}
		log.Debug(ctx, msgEnvFileSkipped, zap.String(attrPath, envPath))
	}

	var cfg T
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, errFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
