package resilience

import (
	"context"

	"go.uber.org/zap"

	"quicknote/pkg/logger"
)

// Policy объединяет circuit breaker и повторные попытки для одного внешнего сервиса.
type Policy struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewPolicy создает политику с явными настройками.
func NewPolicy(serviceName string, cbConfig CircuitBreakerConfig, retryConfig RetryConfig) *Policy {
	return &Policy{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, cbConfig),
		retry:          NewRetry(serviceName, retryConfig),
	}
}

// NewDefaultPolicy создает политику с настройками по умолчанию.
func NewDefaultPolicy(serviceName string) *Policy {
	return NewPolicy(serviceName, DefaultCircuitBreakerConfig(), DefaultRetryConfig())
}

// Execute выполняет операцию с повторами внутри circuit breaker.
func (p *Policy) Execute(ctx context.Context, operationName string, operation func() error) error {
	logger.Log(ctx).Debug(ctx, "executing operation with resilience",
		zap.String("service", p.serviceName),
		zap.String("operation", operationName))

	return p.circuitBreaker.Execute(ctx, func() error {
		return p.retry.Execute(ctx, operation)
	})
}

// CircuitState возвращает состояние circuit breaker политики.
func (p *Policy) CircuitState() CircuitState {
	return p.circuitBreaker.State()
}

// ExecuteWithResult выполняет операцию, возвращающую значение, с политикой p.
func ExecuteWithResult[T any](ctx context.Context, p *Policy, operationName string, operation func() (T, error)) (T, error) {
	var result T
	err := p.Execute(ctx, operationName, func() error {
		v, err := operation()
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
