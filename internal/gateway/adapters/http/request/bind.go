// Package request содержит помощники разбора входящих HTTP запросов.
package request

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
)

// BindJSON разбирает JSON тело запроса декодером приложения.
// Пустое тело равносильно {}.
func BindJSON(ctx fiber.Ctx, dst interface{}) error {
	body := ctx.Body()
	if len(body) == 0 {
		return nil
	}
	if err := ctx.App().Config().JSONDecoder(body, dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}
