package api

import (
	"context"

	"quicknote/internal/auth/domain/entities"
)

// UserUseCase определяет основной порт для пользовательских операций
type UserUseCase interface {
	GetUserProfile(ctx context.Context, userID string) (*entities.User, error)

	ListUsers(ctx context.Context) ([]*entities.User, error)
}
