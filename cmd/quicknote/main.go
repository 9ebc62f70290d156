package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	gatewayhttp "quicknote/internal/gateway/adapters/http"
	"quicknote/internal/gateway/app"
	"quicknote/internal/gateway/config"
	"quicknote/pkg/logger"
	"quicknote/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "QUICKNOTE_LOGGER_MODE"
	EnvLoggerLevel = "QUICKNOTE_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitContainer        = "failed to initialize services"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "quicknote service started"
	LogServiceShutdownDone = "quicknote service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingResources    = "closing database and cache connections"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitServices)
		container, err := app.NewContainer(ctx, cfg, cfg.Postgres.AutoMigrate)
		if err != nil {
			log.Error(ctx, ErrInitContainer, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := gatewayhttp.NewApp(cfg.HTTP)
		gatewayhttp.SetupRouter(fiberApp, gatewayhttp.Dependencies{
			Logger: log,
			Notes:  container.Notes,
			Auth:   container.Auth,
			Users:  container.Users,
			Tokens: container.Tokens,
			Health: container.HealthChecks(),
		}, gatewayhttp.OptionsFromConfig(cfg))
		server := gatewayhttp.NewServer(fiberApp, cfg.HTTP.GetAddress())

		serveCtx, stopServing := context.WithCancel(ctx)
		defer stopServing()

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		serveErr := make(chan error, 1)
		go func() {
			if err := server.Start(ctx); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
				serveErr <- err
				stopServing()
			}
		}()

		shutdown.Wait(serveCtx, cfg.Shutdown.Timeout,
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				if err := server.Shutdown(ctx); err != nil {
					return err
				}
				log.Info(ctx, LogClosingResources)
				return container.Close(ctx)
			},
		)

		select {
		case <-serveErr:
			exitCode = 1
		default:
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
