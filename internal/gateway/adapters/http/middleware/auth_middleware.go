package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quicknote/internal/auth/ports/services"
	"quicknote/internal/gateway/adapters/http/response"
	"quicknote/pkg/logger"
)

const bearerPrefix = "Bearer "

// NewAuthMiddleware требует валидный access токен в заголовке Authorization.
func NewAuthMiddleware(tokens services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		return authenticate(ctx, tokens)
	}
}

// NewWriteAuthMiddleware пропускает безопасные методы без токена
// и требует аутентификацию для остальных, если enabled.
func NewWriteAuthMiddleware(tokens services.TokenService, enabled bool) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if !enabled || isSafeMethod(ctx.Method()) {
			return ctx.Next()
		}
		return authenticate(ctx, tokens)
	}
}

func authenticate(ctx fiber.Ctx, tokens services.TokenService) error {
	requestCtx := RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

	authHeader := ctx.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		log.Debug(requestCtx, "no authorization header provided")
		return response.Message(ctx, fiber.StatusUnauthorized, response.MsgNotAuthenticated)
	}

	token, ok := strings.CutPrefix(authHeader, bearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		log.Debug(requestCtx, "invalid token format")
		return response.Message(ctx, fiber.StatusUnauthorized, response.MsgInvalidToken)
	}

	userID, err := tokens.ValidateAccessToken(requestCtx, strings.TrimSpace(token))
	if err != nil {
		log.Debug(requestCtx, "access token rejected", zap.Error(err))
		return response.Message(ctx, fiber.StatusUnauthorized, response.MsgInvalidToken)
	}

	ctx.Locals(LocalsUserContext, WithUserID(requestCtx, userID))
	return ctx.Next()
}

func isSafeMethod(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	default:
		return false
	}
}
