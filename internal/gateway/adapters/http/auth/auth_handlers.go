// Package auth содержит HTTP-обработчики аутентификации.
package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quicknote/internal/auth/ports/api"
	"quicknote/internal/gateway/adapters/http/middleware"
	"quicknote/internal/gateway/adapters/http/request"
	"quicknote/internal/gateway/adapters/http/response"
	"quicknote/internal/gateway/app/dto"
	"quicknote/pkg/logger"
)

// Сообщения для логирования.
const (
	LogHandlerSocialLogin = "handling google login request"
	LogHandlerRefresh     = "handling refresh token request"
	LogHandlerLogout      = "handling logout request"
	LogHandlerProfile     = "handling get profile request"
)

// Handler обработчик HTTP-запросов аутентификации.
type Handler struct {
	auth  api.AuthUseCase
	users api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(auth api.AuthUseCase, users api.UserUseCase) *Handler {
	return &Handler{
		auth:  auth,
		users: users,
	}
}

// GoogleLogin обменивает Google ID token на пару токенов сервиса.
func (h *Handler) GoogleLogin(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.GoogleLogin"))
	log.Debug(userCtx, LogHandlerSocialLogin)

	var req dto.SocialLoginRequest
	if err := request.BindJSON(ctx, &req); err != nil {
		return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidJSON)
	}

	if err := req.Validate(); err != nil {
		return response.Error(ctx, err)
	}

	pair, err := h.auth.SocialLogin(userCtx, req.AuthToken.Value)
	if err != nil {
		log.Info(userCtx, "social login rejected", zap.Error(err))
		return response.Error(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.SocialLoginResponse{
		Email:   pair.Email,
		Access:  pair.AccessToken,
		Refresh: pair.RefreshToken,
	})
}

// RefreshToken выдает новую пару токенов, старый refresh токен отзывается.
func (h *Handler) RefreshToken(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	logger.Log(userCtx).With(zap.String("handler", "Handler.RefreshToken")).Debug(userCtx, LogHandlerRefresh)

	var req dto.RefreshRequest
	if err := request.BindJSON(ctx, &req); err != nil {
		return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidJSON)
	}

	if err := req.Validate(); err != nil {
		return response.Error(ctx, err)
	}

	pair, err := h.auth.RefreshTokens(userCtx, req.RefreshToken.Value)
	if err != nil {
		return response.Error(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout отзывает refresh токен текущего пользователя. Требует аутентификации.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	logger.Log(userCtx).With(zap.String("handler", "Handler.Logout")).Debug(userCtx, LogHandlerLogout)

	userID, ok := middleware.UserIDFromContext(userCtx)
	if !ok {
		return response.Message(ctx, fiber.StatusUnauthorized, response.MsgNotAuthenticated)
	}

	var req dto.LogoutRequest
	if err := request.BindJSON(ctx, &req); err != nil {
		return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidJSON)
	}

	if err := h.auth.Logout(userCtx, userID, req.RefreshToken); err != nil {
		return response.Error(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// GetUserProfile возвращает профиль текущего пользователя.
func (h *Handler) GetUserProfile(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	logger.Log(userCtx).With(zap.String("handler", "Handler.GetUserProfile")).Debug(userCtx, LogHandlerProfile)

	userID, ok := middleware.UserIDFromContext(userCtx)
	if !ok {
		return response.Message(ctx, fiber.StatusUnauthorized, response.MsgNotAuthenticated)
	}

	user, err := h.users.GetUserProfile(userCtx, userID)
	if err != nil {
		return response.Error(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.UserProfileFromEntity(user))
}

func sendJSON(ctx fiber.Ctx, status int, body interface{}) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
