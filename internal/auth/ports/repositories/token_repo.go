package repositories

import (
	"context"

	"quicknote/internal/auth/domain/services"
)

// TokenRepository определяет интерфейс для операций по управлению токенами.
type TokenRepository interface {
	StoreRefreshToken(ctx context.Context, token *services.RefreshToken) error

	FindByToken(ctx context.Context, token string) (*services.RefreshToken, error)

	// RevokeToken отзывает действующий токен пользователя; services.ErrRevokedRefreshToken, если такого нет.
	RevokeToken(ctx context.Context, userID, token string) error

	RevokeAllUserTokens(ctx context.Context, userID string) error

	// CleanupExpiredTokens удаляет просроченные и отозванные токены, возвращает их число.
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}
