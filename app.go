package main

import (
	"shopapi/internal/config"
	"shopapi/internal/database"
	"shopapi/internal/repositories"
	"shopapi/internal/server"
	"shopapi/internal/services"
	"shopapi/internal/storage"
	"shopapi/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// buildApp wires repositories, services and the HTTP layer together.
func buildApp(
	cfg *config.Config,
	db *gorm.DB,
	assets storage.AssetStore,
	publicDir string,
	events services.EventPublisher,
	logr *zap.Logger,
) (*fiber.App, error) {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	tokenRepo := repositories.NewGORMAccessTokenRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	// --- Services ---
	validator := validation.New()
	tokenIssuer := services.NewTokenIssuer(tokenRepo, userRepo, cfg.TokenSecret, cfg.TokenTTL)
	authService, err := services.NewAuthService(userRepo, tokenIssuer, validator, events, logr.Named("auth"))
	if err != nil {
		return nil, err
	}
	productService := services.NewProductService(productRepo, assets, validator, events, logr.Named("products"),
		services.WithPruneReplacedImages(cfg.PruneReplacedImages),
	)

	return server.NewApp(server.Deps{
		Auth:      authService,
		Products:  productService,
		Log:       logr,
		Ping:      func() error { return database.Ping(db) },
		APIPrefix: cfg.APIPrefix,
		PublicDir: publicDir,
		BodyLimit: cfg.BodyLimitMB * 1024 * 1024,
	}), nil
}
