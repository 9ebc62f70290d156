package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"quicknote/internal/auth/domain/services"
	svc "quicknote/internal/auth/ports/services"
	"quicknote/pkg/logger"
)

// Константы для работы с JWT.
const (
	Issuer = "quicknote"

	methodGenerateToken   = "ServiceJWT.generate"
	methodValidateToken   = "ServiceJWT.validate"
	msgGeneratingToken    = "generating token"
	msgTokenGenerated     = "token generated successfully"
	msgTokenValidated     = "token validated successfully"
	msgTokenExpired       = "token has expired"
	msgEmptySecret        = "empty secret key provided"
	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"
	errSigningToken       = "error signing token" //nolint:gosec
	errParsingToken       = "error parsing token"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	config services.JWTConfig
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, accessTokenTTL, refreshTokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: services.JWTConfig{
			SecretKey:       []byte(secretKey),
			Issuer:          Issuer,
			AccessTokenTTL:  accessTokenTTL,
			RefreshTokenTTL: refreshTokenTTL,
		},
	}
}

// domainToJWTClaims преобразует доменные claims в формат библиотеки JWT.
func domainToJWTClaims(claims services.JWTClaims, issuer string) Claims {
	return Claims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		TokenType: claims.TokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claims.TokenID,
			Issuer:    issuer,
			Subject:   claims.UserID,
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
		},
	}
}

// GenerateAccessToken генерирует JWT токен доступа.
func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, userID, email string) (string, time.Time, error) {
	return s.generate(ctx, services.JWTClaims{
		UserID:    userID,
		Email:     email,
		TokenType: services.TokenTypeAccess,
	}, s.config.AccessTokenTTL)
}

// GenerateRefreshToken генерирует refresh токен.
// Каждый токен получает уникальный jti, поэтому два токена одного пользователя не совпадают.
func (s *ServiceJWT) GenerateRefreshToken(ctx context.Context, userID string) (string, time.Time, error) {
	return s.generate(ctx, services.JWTClaims{
		UserID:    userID,
		TokenType: services.TokenTypeRefresh,
	}, s.config.RefreshTokenTTL)
}

func (s *ServiceJWT) generate(ctx context.Context, claims services.JWTClaims, ttl time.Duration) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateToken),
		zap.String("userID", claims.UserID),
		zap.String("type", claims.TokenType),
	)
	log.Debug(ctx, msgGeneratingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecret)
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	now := time.Now()
	claims.IssuedAt = now
	claims.ExpiresAt = now.Add(ttl)
	claims.TokenID = uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, domainToJWTClaims(claims, s.config.Issuer))

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", claims.ExpiresAt))
	return tokenString, claims.ExpiresAt, nil
}

// ValidateAccessToken проверяет JWT токен доступа и возвращает ID пользователя.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	return s.validate(ctx, tokenString, services.TokenTypeAccess)
}

// ValidateRefreshToken проверяет подпись и срок refresh токена и возвращает ID пользователя.
func (s *ServiceJWT) ValidateRefreshToken(ctx context.Context, tokenString string) (string, error) {
	return s.validate(ctx, tokenString, services.TokenTypeRefresh)
}

func (s *ServiceJWT) validate(ctx context.Context, tokenString, tokenType string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken), zap.String("type", tokenType))

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	}, jwt.WithIssuer(s.config.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return "", fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	if claims.TokenType != tokenType {
		log.Debug(ctx, "token type mismatch", zap.String("got", claims.TokenType))
		return "", fmt.Errorf("%s: %w: %w", errCtxValidatingToken, services.ErrInvalidJWTToken, services.ErrWrongTokenType)
	}

	if claims.UserID == "" {
		return "", fmt.Errorf("%s: %w: empty user_id", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", claims.UserID))
	return claims.UserID, nil
}
