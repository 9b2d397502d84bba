// Package server assembles the fiber application and its route table.
package server

import (
	"shopapi/internal/handlers"
	"shopapi/internal/middleware"
	"shopapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Auth     *services.AuthService
	Products *services.ProductService
	Log      *zap.Logger
	// Ping checks the database for the health endpoint.
	Ping func() error
	// APIPrefix is prepended to every API route, e.g. "/api".
	APIPrefix string
	// PublicDir, when set, is served read-only under /storage.
	PublicDir string
	// BodyLimit caps request bodies in bytes; zero keeps fiber's default.
	BodyLimit int
}

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(d.Log),
		BodyLimit:             d.BodyLimit,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestLogger(d.Log))
	app.Use(recover.New())

	app.Get("/health", handlers.HandleHealth(d.Ping))
	if d.PublicDir != "" {
		app.Static("/storage", d.PublicDir, fiber.Static{Browse: false})
	}

	api := app.Group(d.APIPrefix)
	authRequired := middleware.AuthRequired(d.Auth, d.Log)

	handlers.NewAuthHandler(d.Auth).RegisterRoutes(api, authRequired)
	handlers.NewProductHandler(d.Products).RegisterRoutes(api, authRequired)

	return app
}
