// Package http содержит HTTP сервер Gateway: маршруты, обработчики и middleware.
package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	authapi "quicknote/internal/auth/ports/api"
	"quicknote/internal/auth/ports/services"
	"quicknote/internal/gateway/adapters/http/auth"
	"quicknote/internal/gateway/adapters/http/health"
	"quicknote/internal/gateway/adapters/http/middleware"
	"quicknote/internal/gateway/adapters/http/notes"
	"quicknote/internal/gateway/adapters/http/response"
	"quicknote/internal/gateway/config"
	notesapi "quicknote/internal/notes/ports/api"
	"quicknote/pkg/logger"
)

// Dependencies - прикладные сервисы, которые обслуживает HTTP слой.
type Dependencies struct {
	Logger *logger.Logger
	Notes  notesapi.NoteService
	Auth   authapi.AuthUseCase
	Users  authapi.UserUseCase
	Tokens services.TokenService
	Health map[string]health.Checker
}

// Options - настройки маршрутизации.
type Options struct {
	WriteRequiresAuth bool
	LimiterEnabled    bool
	LimiterMax        int
	LimiterExpiration time.Duration
}

// OptionsFromConfig собирает Options из конфигурации сервиса.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		WriteRequiresAuth: cfg.Notes.WriteRequiresAuth,
		LimiterEnabled:    cfg.Limiter.Enabled,
		LimiterMax:        cfg.Limiter.Max,
		LimiterExpiration: cfg.Limiter.Expiration,
	}
}

// NewApp создает fiber.App с обработчиком ошибок в формате API.
func NewApp(cfg config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      config.ServiceName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: response.ErrorHandler,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies, opts Options) {
	notesHandler := notes.NewHandler(deps.Notes)
	authHandler := auth.NewHandler(deps.Auth, deps.Users)
	healthHandler := health.NewHandler(deps.Health)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware(deps.Logger))
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/healthz", healthHandler.Health)

	// Заметки: чтение публичное, запись по токену.
	notesRoutes := app.Group("/notes")
	if opts.LimiterEnabled {
		notesRoutes.Use(middleware.NewLimiterMiddleware(opts.LimiterMax, opts.LimiterExpiration))
	}
	notesRoutes.Use(middleware.NewWriteAuthMiddleware(deps.Tokens, opts.WriteRequiresAuth))
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/:id", notesHandler.GetNote)
	notesRoutes.Put("/:id", notesHandler.UpdateNote)
	notesRoutes.Patch("/:id", notesHandler.PatchNote)
	notesRoutes.Delete("/:id", notesHandler.DeleteNote)

	// Auth routes (публичные).
	authRoutes := app.Group("/auth")
	authRoutes.Post("/google", authHandler.GoogleLogin)
	authRoutes.Post("/token/refresh", authHandler.RefreshToken)

	// Защищенные маршруты: в fiber v3 middleware маршрута передаются после обработчика.
	requireAuth := middleware.NewAuthMiddleware(deps.Tokens)
	authRoutes.Post("/logout", authHandler.Logout, requireAuth)
	authRoutes.Get("/me", authHandler.GetUserProfile, requireAuth)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return response.Message(c, fiber.StatusNotFound, response.MsgRouteNotFound)
	})
}

// Server - HTTP сервер с корректной остановкой.
type Server struct {
	app     *fiber.App
	address string
}

// NewServer создает сервер на готовом приложении.
func NewServer(app *fiber.App, address string) *Server {
	return &Server{app: app, address: address}
}

// Start блокирует до остановки сервера.
func (s *Server) Start(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, "starting HTTP server")
	if err := s.app.Listen(s.address, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Shutdown останавливает прием запросов и ждет завершения активных.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}
