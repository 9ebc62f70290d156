// Package health содержит проверку готовности зависимостей.
package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quicknote/internal/gateway/adapters/http/middleware"
	"quicknote/internal/gateway/adapters/http/response"
	"quicknote/pkg/logger"
)

const checkTimeout = 2 * time.Second

// Checker проверяет доступность зависимости.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc адаптирует функцию к Checker.
type CheckerFunc func(ctx context.Context) error

// Ping вызывает f(ctx).
func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Handler отвечает на /healthz.
type Handler struct {
	checks map[string]Checker
}

// NewHandler создает обработчик с именованными проверками.
func NewHandler(checks map[string]Checker) *Handler {
	return &Handler{checks: checks}
}

// Health возвращает 200, если все зависимости отвечают, иначе 503.
func (h *Handler) Health(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	checkCtx, cancel := context.WithTimeout(userCtx, checkTimeout)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	status := fiber.StatusOK
	for name, check := range h.checks {
		if err := check.Ping(checkCtx); err != nil {
			logger.Log(userCtx).Warn(userCtx, "health check failed", zap.String("dependency", name), zap.Error(err))
			results[name] = "unavailable"
			status = fiber.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	if status != fiber.StatusOK {
		return ctx.Status(status).JSON(response.Envelope{Status: response.StatusError, Data: results})
	}
	return response.Data(ctx, status, results)
}
