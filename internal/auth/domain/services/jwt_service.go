package services

import (
	"errors"
	"time"
)

// JWTErrors содержит ошибки, связанные с JWT токенами.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
	ErrWrongTokenType     = errors.New("unexpected JWT token type")
)

// Типы токенов (claim "typ").
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWTConfig содержит настройки для JWT сервиса.
type JWTConfig struct {
	SecretKey       []byte
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// JWTClaims определяет структуру данных JWT токена.
type JWTClaims struct {
	UserID    string
	Email     string
	TokenType string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
