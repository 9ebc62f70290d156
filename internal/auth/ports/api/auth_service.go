// Package api defines the application API of the auth service.
package api

import (
	"context"

	"quicknote/internal/auth/domain/services"
)

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	// SocialLogin проверяет токен поставщика, находит или создает пользователя и выдает токены.
	SocialLogin(ctx context.Context, authToken string) (*services.TokenPair, error)

	RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error)

	// Logout отзывает refreshToken, а если он пуст - все токены пользователя.
	Logout(ctx context.Context, userID, refreshToken string) error

	CleanupTokens(ctx context.Context) (int64, error)
}
