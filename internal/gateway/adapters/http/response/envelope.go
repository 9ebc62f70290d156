// Package response формирует JSON конверты ответов API.
package response

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quicknote/pkg/apperr"
	"quicknote/pkg/logger"
)

// Значения поля status.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Сообщения об ошибках.
const (
	MsgInternalError    = "Internal server error"
	MsgRouteNotFound    = "Route not found"
	MsgInvalidJSON      = "JSON parse error"
	MsgThrottled        = "Request was throttled"
	MsgNotAuthenticated = "Authentication credentials were not provided."
	MsgInvalidToken     = "Given token not valid for any token type"
)

// LocalsUserContext - ключ fiber.Locals с контекстом запроса (logger, request_id, пользователь).
const LocalsUserContext = "userContext"

// Envelope - общий конверт ответа.
type Envelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Count   *int                `json:"count,omitempty"`
	Results interface{}         `json:"results,omitempty"`
}

// Data отправляет {status:"success", data}.
func Data(c fiber.Ctx, status int, data interface{}) error {
	return send(c, status, Envelope{Status: StatusSuccess, Data: data})
}

// List отправляет {status:"success", count, results}.
func List[T any](c fiber.Ctx, results []T) error {
	if results == nil {
		results = []T{}
	}
	count := len(results)
	return send(c, fiber.StatusOK, Envelope{Status: StatusSuccess, Count: &count, Results: results})
}

// Message отправляет {status:"error", message} с указанным кодом.
func Message(c fiber.Ctx, status int, msg string) error {
	return send(c, status, Envelope{Status: StatusError, Message: msg})
}

// Error переводит ошибку прикладного уровня в HTTP ответ.
func Error(c fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(MsgInternalError, err)
	}

	status := StatusCode(appErr.Kind)
	if status >= fiber.StatusInternalServerError {
		ctx := requestContext(c)
		logger.Log(ctx).Error(ctx, "request failed", zap.Error(err))
		return Message(c, status, MsgInternalError)
	}

	if appErr.Kind == apperr.KindValidation && len(appErr.Fields) > 0 {
		return send(c, status, Envelope{Status: StatusError, Errors: appErr.Fields})
	}
	return Message(c, status, appErr.Message)
}

// StatusCode возвращает HTTP статус для вида ошибки.
func StatusCode(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindAuthentication:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler - обработчик ошибок fiber.App, сюда попадают ошибки роутинга
// и все, что handler вернул не через Error.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		msg := fiberErr.Message
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			msg = MsgRouteNotFound
		case fiber.StatusTooManyRequests:
			msg = MsgThrottled
		}
		return Message(c, fiberErr.Code, msg)
	}
	return Error(c, err)
}

func requestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(LocalsUserContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

func send(c fiber.Ctx, status int, body Envelope) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
