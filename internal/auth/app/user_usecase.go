package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"quicknote/internal/auth/domain/entities"
	"quicknote/internal/auth/ports/api"
	"quicknote/internal/auth/ports/repositories"
	"quicknote/pkg/apperr"
	"quicknote/pkg/logger"
)

const (
	MsgUserNotFound = "User not found"

	msgErrFindingUserByID = "failed to find user by ID"
	msgErrListingUsers    = "failed to list users"
	msgProfileRetrieved   = "user profile retrieved"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает новый экземпляр сервиса пользователя.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo: userRepo,
	}
}

// GetUserProfile получает профиль пользователя по ID.
func (u *UserUseCaseImpl) GetUserProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "GetUserProfile"), zap.String("userID", userID))

	if userID == "" {
		return nil, apperr.Authentication("Authentication credentials were not provided.", nil)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, apperr.NotFound(MsgUserNotFound)
		}
		log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, apperr.Internal(msgErrFindingUserByID, err)
	}

	log.Debug(ctx, msgProfileRetrieved)
	return user, nil
}

// ListUsers возвращает всех пользователей.
func (u *UserUseCaseImpl) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(msgErrListingUsers, err)
	}
	return users, nil
}
