package serverutils

import (
	"errors"
	"net/http"

	"ai-guide-assistant/internal/config"
	"ai-guide-assistant/pkg/rag"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a domain error to an HTTP status.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	var validationErr *ValidationError
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, rag.ErrExternalService):
		return http.StatusBadGateway
	case errors.Is(err, config.ErrConfiguration):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware turns errors returned by handlers into JSON replies.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
