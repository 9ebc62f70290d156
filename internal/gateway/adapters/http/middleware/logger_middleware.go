package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quicknote/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewLoggerMiddleware создает промежуточное ПО для логирования HTTP запросов.
// Входящий X-Request-ID сохраняется, иначе генерируется новый.
func NewLoggerMiddleware(base *logger.Logger) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx.Set(HeaderRequestID, requestID)

		var requestCtx context.Context = ctx.Context()
		if base != nil {
			requestCtx = logger.NewContext(requestCtx, base)
		}
		requestCtx = logger.NewRequestIDContext(requestCtx, requestID)
		ctx.Locals(LocalsUserContext, requestCtx)

		log := logger.Log(requestCtx).With(
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()),
		)
		log.Debug(requestCtx, "Request started")

		err := ctx.Next()
		if err != nil {
			// статус ответа выставит ErrorHandler приложения
			if handlerErr := ctx.App().Config().ErrorHandler(ctx, err); handlerErr != nil {
				log.Error(requestCtx, "Failed to send error response", zap.Error(handlerErr))
			}
		}

		logFields := []zap.Field{
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			log.Warn(requestCtx, "Request failed", append(logFields, zap.Error(err))...)
			return nil
		}

		log.Info(requestCtx, "Request completed", logFields...)
		return nil
	}
}
