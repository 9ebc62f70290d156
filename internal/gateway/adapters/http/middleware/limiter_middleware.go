package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"

	"quicknote/internal/gateway/adapters/http/response"
)

// NewLimiterMiddleware ограничивает число запросов с одного IP за окно expiration.
func NewLimiterMiddleware(maxRequests int, expiration time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: expiration,
		KeyGenerator: func(ctx fiber.Ctx) string {
			return ctx.IP()
		},
		LimitReached: func(ctx fiber.Ctx) error {
			return response.Message(ctx, fiber.StatusTooManyRequests, response.MsgThrottled)
		},
	})
}
