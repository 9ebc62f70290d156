package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	ErrRevokedRefreshToken   = errors.New("refresh token has been revoked")
	ErrExpiredRefreshToken   = errors.New("refresh token has expired")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication tokens")
	ErrInvalidIdentityToken  = errors.New("invalid identity token")
	ErrIdentityUnavailable   = errors.New("identity provider unavailable")
)

// TokenPair представляет пару токенов аутентификации.
type TokenPair struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// RefreshToken представляет сущность refresh-токена.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	IsRevoked bool
}

// Identity - подтвержденные поставщиком данные пользователя.
type Identity struct {
	Email    string
	Name     string
	Provider string
}
