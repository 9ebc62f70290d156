// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"quicknote/internal/gateway/adapters/http/response"
)

// LocalsUserContext - ключ fiber.Locals, под которым хранится обогащенный контекст запроса.
const LocalsUserContext = response.LocalsUserContext

type userIDKeyType struct{}

var userIDKey = userIDKeyType{}

// RequestContext возвращает контекст запроса, подготовленный middleware.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(LocalsUserContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

// WithUserID добавляет ID аутентифицированного пользователя в контекст.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext извлекает ID пользователя, если запрос аутентифицирован.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
