package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quicknote/internal/auth/app"
	"quicknote/internal/auth/domain/entities"
	"quicknote/pkg/apperr"
)

func TestGetUserProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Профиль найден", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindByID", mock.Anything, "user-1").Return(existingUser(entities.ProviderGoogle), nil)

		user, err := app.NewUserUseCase(repo).GetUserProfile(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("Пустой ID", func(t *testing.T) {
		repo := new(mockUserRepository)

		_, err := app.NewUserUseCase(repo).GetUserProfile(ctx, "")

		assert.True(t, apperr.Is(err, apperr.KindAuthentication))
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("Пользователь удален", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindByID", mock.Anything, "user-1").Return(nil, entities.ErrUserNotFound)

		_, err := app.NewUserUseCase(repo).GetUserProfile(ctx, "user-1")

		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("Ошибка БД", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindByID", mock.Anything, "user-1").Return(nil, errors.New("db down"))

		_, err := app.NewUserUseCase(repo).GetUserProfile(ctx, "user-1")

		assert.True(t, apperr.Is(err, apperr.KindInternal))
	})
}

func TestListUsers(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("List", mock.Anything).Return([]*entities.User{existingUser(entities.ProviderGoogle)}, nil)

	users, err := app.NewUserUseCase(repo).ListUsers(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 1)
}
