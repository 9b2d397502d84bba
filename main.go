package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shopapi/internal/config"
	"shopapi/internal/database"
	"shopapi/internal/logger"
	"shopapi/internal/services"
	"shopapi/internal/storage"
	"shopapi/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logr.Fatal("failed to open database", zap.Error(err))
	}

	// --- Asset store ---
	assets, publicDir, err := newAssetStore(cfg)
	if err != nil {
		logr.Fatal("failed to initialise asset store", zap.Error(err))
	}

	// --- Events (optional) ---
	var events services.EventPublisher = services.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: "shop.events",
			Queue:    "shop_events",
		})
		if err != nil {
			logr.Fatal("failed to initialise RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		events = mqClient
		logr.Info("publishing domain events to RabbitMQ")
	}

	app, err := buildApp(cfg, db, assets, publicDir, events, logr)
	if err != nil {
		logr.Fatal("failed to build application", zap.Error(err))
	}

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logr.Info("starting server", zap.String("addr", cfg.AppPort))
		if err := app.Listen(cfg.AppPort); err != nil {
			logr.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logr.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		logr.Error("error during shutdown", zap.Error(err))
	}
	logr.Info("server gracefully stopped")
}

func newAssetStore(cfg *config.Config) (storage.AssetStore, string, error) {
	if cfg.StorageDriver == "s3" {
		client, err := storage.NewS3Client(context.Background(), storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, "", err
		}
		return storage.NewS3Store(client, cfg.S3Bucket), "", nil
	}

	local, err := storage.NewLocalStore(cfg.StorageRoot)
	if err != nil {
		return nil, "", err
	}
	return local, local.Root(), nil
}
