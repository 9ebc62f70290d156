// Package app implements application business logic for the auth service.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quicknote/internal/auth/domain/entities"
	"quicknote/internal/auth/domain/services"
	"quicknote/internal/auth/ports/api"
	"quicknote/internal/auth/ports/repositories"
	svc "quicknote/internal/auth/ports/services"
	"quicknote/pkg/apperr"
	"quicknote/pkg/logger"
)

// Поля запросов и сообщения об ошибках, которые видит клиент.
const (
	FieldAuthToken    = "auth_token"
	FieldRefreshToken = "refresh_token"

	MsgFieldBlank            = "This field may not be blank."
	MsgTokenValidationFailed = "Token validation failed"
	MsgInvalidOrExpiredToken = "Invalid or expired token"
	MsgIdentityUnavailable   = "Identity provider is unavailable"

	msgAccountExistsTemplate = "Account exists with %s authentication"
	msgErrGenerateTokens     = "failed to generate tokens"
	msgErrLookupUser         = "failed to look up user"
	msgErrCreateUser         = "failed to create user"
	msgErrHashPassword       = "failed to hash random password"
	msgErrRevokeTokens       = "failed to revoke tokens"
	msgErrCleanupTokens      = "failed to clean up tokens"
	msgErrStoreRefreshToken  = "failed to store refresh token"
	msgErrFindRefreshToken   = "failed to find refresh token"
	msgUserLoggedIn          = "user logged in"
	msgSocialUserRegistered  = "social user registered"
	msgTokensRefreshed       = "tokens refreshed"
	msgUserLoggedOut         = "user logged out"
	msgProviderMismatch      = "login with mismatched provider"
	msgRefreshTokenRejected  = "refresh token rejected"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo        repositories.UserRepository
	tokenRepo       repositories.TokenRepository
	passwordService svc.PasswordService
	tokenService    svc.TokenService
	verifier        svc.IdentityVerifier
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	passwordService svc.PasswordService,
	tokenService svc.TokenService,
	verifier svc.IdentityVerifier,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		verifier:        verifier,
	}
}

// SocialLogin проверяет токен поставщика и выдает пару токенов.
// При любой ошибке пользователь не создается и не изменяется.
func (a *AuthUseCaseImpl) SocialLogin(ctx context.Context, authToken string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", "SocialLogin"))

	if strings.TrimSpace(authToken) == "" {
		return nil, fieldError(FieldAuthToken, MsgFieldBlank)
	}

	identity, err := a.verifier.Verify(ctx, authToken)
	if err != nil {
		if errors.Is(err, services.ErrIdentityUnavailable) {
			return nil, apperr.Internal(MsgIdentityUnavailable, err)
		}
		if errors.Is(err, services.ErrInvalidIdentityToken) {
			log.Debug(ctx, MsgTokenValidationFailed, zap.Error(err))
			return nil, fieldError(FieldAuthToken, MsgTokenValidationFailed)
		}
		return nil, apperr.Internal(MsgTokenValidationFailed, err)
	}

	user, err := a.RegisterSocialUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	pair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		return nil, apperr.Internal(msgErrGenerateTokens, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID), zap.String("provider", identity.Provider))
	return pair, nil
}

// RegisterSocialUser находит пользователя по email или создает его со случайным паролем.
// Пользователь, зарегистрированный через другого поставщика, получает ошибку конфликта.
func (a *AuthUseCaseImpl) RegisterSocialUser(ctx context.Context, identity *services.Identity) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "RegisterSocialUser"))

	user, err := a.userRepo.FindByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		return checkProvider(ctx, user, identity.Provider)
	case !errors.Is(err, entities.ErrUserNotFound):
		return nil, apperr.Internal(msgErrLookupUser, err)
	}

	hash, err := a.passwordService.Hash(ctx, uuid.NewString())
	if err != nil {
		return nil, apperr.Internal(msgErrHashPassword, err)
	}

	newUser, err := entities.NewSocialUser(identity.Email, identity.Name, identity.Provider, hash)
	if err != nil {
		return nil, fieldError(FieldAuthToken, MsgTokenValidationFailed)
	}

	created, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, entities.ErrEmailAlreadyExists) {
			// параллельный первый вход с тем же email
			existing, findErr := a.userRepo.FindByEmail(ctx, identity.Email)
			if findErr != nil {
				return nil, apperr.Internal(msgErrLookupUser, findErr)
			}
			return checkProvider(ctx, existing, identity.Provider)
		}
		return nil, apperr.Internal(msgErrCreateUser, err)
	}

	log.Info(ctx, msgSocialUserRegistered, zap.String("userID", created.ID), zap.String("provider", created.AuthProvider))
	return created, nil
}

func checkProvider(ctx context.Context, user *entities.User, provider string) (*entities.User, error) {
	if user.AuthProvider != provider {
		logger.Log(ctx).Info(ctx, msgProviderMismatch,
			zap.String("userID", user.ID),
			zap.String("existing", user.AuthProvider),
			zap.String("requested", provider))
		return nil, apperr.Conflict(fmt.Sprintf(msgAccountExistsTemplate, user.AuthProvider))
	}
	return user, nil
}

// RefreshTokens обменивает действующий refresh токен на новую пару. Старый токен отзывается.
func (a *AuthUseCaseImpl) RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", "RefreshTokens"))

	if strings.TrimSpace(refreshToken) == "" {
		return nil, fieldError(FieldRefreshToken, MsgFieldBlank)
	}

	userID, err := a.tokenService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		log.Debug(ctx, msgRefreshTokenRejected, zap.Error(err))
		return nil, apperr.BadRequest(MsgInvalidOrExpiredToken)
	}

	stored, err := a.tokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRefreshToken) {
			return nil, apperr.BadRequest(MsgInvalidOrExpiredToken)
		}
		return nil, apperr.Internal(msgErrFindRefreshToken, err)
	}
	if stored.IsRevoked || stored.UserID != userID {
		log.Warn(ctx, msgRefreshTokenRejected, zap.String("userID", userID), zap.Bool("revoked", stored.IsRevoked))
		return nil, apperr.BadRequest(MsgInvalidOrExpiredToken)
	}

	if err := a.tokenRepo.RevokeToken(ctx, userID, refreshToken); err != nil {
		if errors.Is(err, services.ErrRevokedRefreshToken) {
			return nil, apperr.BadRequest(MsgInvalidOrExpiredToken)
		}
		return nil, apperr.Internal(msgErrRevokeTokens, err)
	}

	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, apperr.BadRequest(MsgInvalidOrExpiredToken)
		}
		return nil, apperr.Internal(msgErrLookupUser, err)
	}

	pair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		return nil, apperr.Internal(msgErrGenerateTokens, err)
	}

	log.Info(ctx, msgTokensRefreshed, zap.String("userID", userID))
	return pair, nil
}

// Logout отзывает переданный refresh токен или, если он пуст, все токены пользователя.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, userID, refreshToken string) error {
	log := logger.Log(ctx).With(zap.String("method", "Logout"), zap.String("userID", userID))

	if refreshToken == "" {
		if err := a.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
			return apperr.Internal(msgErrRevokeTokens, err)
		}
		log.Info(ctx, msgUserLoggedOut, zap.Bool("all_sessions", true))
		return nil
	}

	owner, err := a.tokenService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil || owner != userID {
		return apperr.BadRequest(MsgInvalidOrExpiredToken)
	}

	err = a.tokenRepo.RevokeToken(ctx, userID, refreshToken)
	if err != nil && !errors.Is(err, services.ErrRevokedRefreshToken) {
		return apperr.Internal(msgErrRevokeTokens, err)
	}

	log.Info(ctx, msgUserLoggedOut, zap.Bool("all_sessions", false))
	return nil
}

// CleanupTokens удаляет просроченные и отозванные refresh токены.
func (a *AuthUseCaseImpl) CleanupTokens(ctx context.Context) (int64, error) {
	removed, err := a.tokenRepo.CleanupExpiredTokens(ctx)
	if err != nil {
		return 0, apperr.Internal(msgErrCleanupTokens, err)
	}
	return removed, nil
}

func (a *AuthUseCaseImpl) generateTokenPair(ctx context.Context, user *entities.User) (*services.TokenPair, error) {
	accessToken, expiresAt, err := a.tokenService.GenerateAccessToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrTokenGenerationFailed, err)
	}

	refreshToken, refreshExpiresAt, err := a.tokenService.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrTokenGenerationFailed, err)
	}

	err = a.tokenRepo.StoreRefreshToken(ctx, &services.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: refreshExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", msgErrStoreRefreshToken, err)
	}

	return &services.TokenPair{
		UserID:       user.ID,
		Email:        user.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

func fieldError(field, msg string) error {
	fields := apperr.FieldErrors{}
	fields.Add(field, msg)
	return apperr.Validation(fields)
}
