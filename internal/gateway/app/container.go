// Package app собирает зависимости сервиса QuickNote из конфигурации.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"quicknote/internal/auth/adapters/google"
	authpostgres "quicknote/internal/auth/adapters/postgres"
	authsvc "quicknote/internal/auth/adapters/services"
	authapp "quicknote/internal/auth/app"
	authapi "quicknote/internal/auth/ports/api"
	"quicknote/internal/auth/ports/services"
	"quicknote/internal/gateway/adapters/http/health"
	"quicknote/internal/gateway/config"
	notescache "quicknote/internal/notes/adapters/cache"
	notespostgres "quicknote/internal/notes/adapters/postgres"
	notesapp "quicknote/internal/notes/app"
	"quicknote/internal/notes/ports/cache"
	"quicknote/migrations"
	"quicknote/pkg/db/postgres"
	"quicknote/pkg/db/redis"
	"quicknote/pkg/logger"
)

// Сообщения об ошибках инициализации.
const (
	ErrConnectPostgres = "failed to connect to postgres"
	ErrMigrate         = "failed to apply migrations"
	ErrConnectRedis    = "failed to connect to redis"
)

// Container хранит подключения и прикладные сервисы.
type Container struct {
	Database *postgres.Database
	Cache    cache.Cache

	Notes  *notesapp.NoteUseCase
	Auth   authapi.AuthUseCase
	Users  authapi.UserUseCase
	Tokens services.TokenService
}

// NewContainer подключается к Postgres и Redis и создает сервисы.
// При migrate=true перед созданием сервисов применяются миграции.
func NewContainer(ctx context.Context, cfg *config.Config, migrate bool) (*Container, error) {
	log := logger.Log(ctx).With(zap.String("component", "container"))

	if migrate {
		if err := postgres.MigrateFS(ctx, cfg.Postgres.GetConnectionURL(), migrations.FS); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMigrate, err)
		}
	}

	db, err := postgres.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConnectPostgres, err)
	}

	redisClient, err := redis.NewClient(ctx, cfg.Redis.ToClientConfig())
	if err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("%s: %w", ErrConnectRedis, err)
	}

	noteCache := notescache.NewRedisCache(redisClient, cfg.Redis.DefaultTTL)
	noteRepo := notespostgres.NewNoteRepository(db.Pool())

	repos := authpostgres.NewRepositoryFactory(db.Pool())
	svcFactory := authsvc.NewServiceFactory(
		cfg.JWT.SecretKey,
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.BCryptCost,
	)
	if cfg.Google.ClientID == "" {
		log.Warn(ctx, "google client id is not configured, social login will be rejected")
	}

	authUseCase := authapp.NewAuthUseCase(
		repos.UserRepository(),
		repos.TokenRepository(),
		svcFactory.PasswordService(),
		svcFactory.TokenService(),
		google.NewVerifier(cfg.Google.ClientID),
	)

	c := &Container{
		Database: db,
		Cache:    noteCache,
		Notes:    notesapp.NewNoteUseCase(noteRepo, noteCache, cfg.Redis.DefaultTTL),
		Auth:     authUseCase,
		Users:    authapp.NewUserUseCase(repos.UserRepository()),
		Tokens:   svcFactory.TokenService(),
	}

	log.Info(ctx, "services initialized")
	return c, nil
}

// HealthChecks возвращает проверки зависимостей для /healthz.
func (c *Container) HealthChecks() map[string]health.Checker {
	return map[string]health.Checker{
		"postgres": c.Database,
		"redis":    c.Cache,
	}
}

// Close закрывает кэш и пул соединений.
func (c *Container) Close(ctx context.Context) error {
	var closeErr error
	if err := c.Cache.Close(); err != nil {
		closeErr = fmt.Errorf("failed to close redis: %w", err)
	}
	c.Database.Close(ctx)
	return closeErr
}
