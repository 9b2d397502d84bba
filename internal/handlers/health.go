package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HandleHealth reports liveness and whether the database answers a ping.
func HandleHealth(ping func() error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, code, database := "healthy", fiber.StatusOK, "connected"
		if err := ping(); err != nil {
			status, code, database = "unhealthy", fiber.StatusServiceUnavailable, "unreachable"
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": database,
		})
	}
}
