package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/genie-bridge/internal/domain"
)

// ErrorHandler maps the bridge error taxonomy to HTTP statuses: bad
// envelopes are the caller's fault, unknown intents are 404, everything
// else (including slot schema mismatches) is a server error.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		case errors.Is(err, domain.ErrInvalidRequestKind):
			code = fiber.StatusBadRequest
		case errors.Is(err, domain.ErrUnknownIntent):
			code = fiber.StatusNotFound
		}

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
