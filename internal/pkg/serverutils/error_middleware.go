package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-voiceshop-be/internal/apperr"
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into the
// JSON envelope, mapping application error kinds onto HTTP status codes.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		status := fiber.StatusInternalServerError
		switch apperr.KindOf(err) {
		case apperr.KindInvalidInput:
			status = fiber.StatusBadRequest
		case apperr.KindNotFound:
			status = fiber.StatusNotFound
		case apperr.KindUpstreamUnavailable:
			status = fiber.StatusBadGateway
		case apperr.KindDataCorruption:
			status = fiber.StatusInternalServerError
		}
		return ctx.Status(status).JSON(ErrorResponse(err.Error()))
	}
}
