// Package handlers maps HTTP requests onto the auth and product services.
package handlers

import (
	"errors"

	"shopapi/internal/services"
	"shopapi/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler turns errors returned by handlers into JSON responses.
// Unexpected errors are logged and reported without detail.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var verr *validation.Error
		var ferr *fiber.Error
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "The given data was invalid.",
				"errors":  verr.Fields,
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			return message(c, fiber.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, services.ErrUnauthenticated):
			return message(c, fiber.StatusUnauthorized, "Unauthenticated.")
		case errors.Is(err, services.ErrProductNotFound):
			return message(c, fiber.StatusNotFound, "Product not found")
		case errors.As(err, &ferr):
			return message(c, ferr.Code, ferr.Message)
		}

		log.Error("unhandled request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return message(c, fiber.StatusInternalServerError, "Server Error")
	}
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}
