// Package repositories defines repository interfaces for the auth service.
package repositories

import (
	"context"

	"quicknote/internal/auth/domain/entities"
)

// UserRepository определяет интерфейс для операций сохранения данных пользователем.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	List(ctx context.Context) ([]*entities.User, error)
}
