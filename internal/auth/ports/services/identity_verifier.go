package services

import (
	"context"

	"quicknote/internal/auth/domain/services"
)

// IdentityVerifier проверяет токен внешнего поставщика и извлекает данные пользователя.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*services.Identity, error)
}
