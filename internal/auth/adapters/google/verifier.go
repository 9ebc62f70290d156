// Package google проверяет ID-токены Google Sign-In.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/idtoken"

	"quicknote/internal/auth/domain/entities"
	"quicknote/internal/auth/domain/services"
	svc "quicknote/internal/auth/ports/services"
	"quicknote/pkg/logger"
	"quicknote/pkg/resilience"
)

const (
	serviceName   = "google-idtoken"
	operationName = "validate"

	claimEmail = "email"
	claimName  = "name"
)

// Ошибки проверки токена.
var (
	ErrClientIDNotConfigured = errors.New("google client ID is not configured")
	ErrAudienceMismatch      = errors.New("audience mismatch")
	ErrEmailClaimMissing     = errors.New("email claim is missing")
)

// ValidateFunc проверяет подпись, срок и издателя токена для указанной аудитории.
type ValidateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// Verifier реализует services.IdentityVerifier для Google.
type Verifier struct {
	clientID string
	validate ValidateFunc
	policy   *resilience.Policy
}

// Option настраивает Verifier.
type Option func(*Verifier)

// WithValidateFunc подменяет функцию проверки токена.
func WithValidateFunc(fn ValidateFunc) Option {
	return func(v *Verifier) {
		v.validate = fn
	}
}

// WithPolicy подменяет политику повторов и circuit breaker.
func WithPolicy(p *resilience.Policy) Option {
	return func(v *Verifier) {
		v.policy = p
	}
}

// NewVerifier создает проверку токенов для OAuth client ID.
func NewVerifier(clientID string, opts ...Option) svc.IdentityVerifier {
	v := &Verifier{
		clientID: clientID,
		validate: idtoken.Validate,
		policy:   NewPolicy(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewPolicy возвращает политику, при которой повторяются и считаются отказами
// только сетевые ошибки. Неверный токен повторять бессмысленно.
func NewPolicy() *resilience.Policy {
	cbCfg := resilience.DefaultCircuitBreakerConfig()
	cbCfg.Timeout = 30 * time.Second
	cbCfg.IsFailure = IsTransportError

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.ShouldRetry = IsTransportError

	return resilience.NewPolicy(serviceName, cbCfg, retryCfg)
}

// IsTransportError сообщает, вызвана ли ошибка сбоем сети при загрузке ключей Google.
func IsTransportError(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// Verify проверяет токен и возвращает email и отображаемое имя.
func (v *Verifier) Verify(ctx context.Context, token string) (*services.Identity, error) {
	log := logger.Log(ctx).With(zap.String("method", "GoogleVerifier.Verify"))

	if v.clientID == "" {
		log.Error(ctx, "google client id is empty")
		return nil, ErrClientIDNotConfigured
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", services.ErrInvalidIdentityToken)
	}

	payload, err := resilience.ExecuteWithResult(ctx, v.policy, operationName, func() (*idtoken.Payload, error) {
		return v.validate(ctx, token, v.clientID)
	})
	if err != nil {
		if IsTransportError(err) || errors.Is(err, resilience.ErrCircuitOpen) {
			log.Warn(ctx, "google token validation unavailable", zap.Error(err))
			return nil, fmt.Errorf("%w: %w", services.ErrIdentityUnavailable, err)
		}
		log.Debug(ctx, "google token rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", services.ErrInvalidIdentityToken, err)
	}

	if payload.Audience != v.clientID {
		return nil, fmt.Errorf("%w: %w: expected %s, got %s",
			services.ErrInvalidIdentityToken, ErrAudienceMismatch, v.clientID, payload.Audience)
	}

	email, _ := payload.Claims[claimEmail].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: %w", services.ErrInvalidIdentityToken, ErrEmailClaimMissing)
	}
	name, _ := payload.Claims[claimName].(string)

	log.Debug(ctx, "google token verified", zap.String("email", email))
	return &services.Identity{
		Email:    email,
		Name:     name,
		Provider: entities.ProviderGoogle,
	}, nil
}
