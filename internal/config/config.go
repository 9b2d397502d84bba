// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the service reads at start-up.
type Config struct {
	AppPort     string
	APIPrefix   string
	LogLevel    string
	BodyLimitMB int

	DBDriver    string
	DatabaseDSN string

	TokenSecret string
	TokenTTL    time.Duration

	StorageDriver       string
	StorageRoot         string
	PruneReplacedImages bool

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	RabbitMQURL string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("API_PREFIX", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BODY_LIMIT_MB", 8)
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "shop.db")
	v.SetDefault("TOKEN_SECRET", "")
	v.SetDefault("TOKEN_TTL", "8760h")
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_ROOT", "storage/public")
	v.SetDefault("PRUNE_REPLACED_IMAGES", false)
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
	v.SetDefault("RABBITMQ_URL", "")
}

// Load reads an optional .env file, then environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:             v.GetString("APP_PORT"),
		APIPrefix:           v.GetString("API_PREFIX"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		BodyLimitMB:         v.GetInt("BODY_LIMIT_MB"),
		DBDriver:            v.GetString("DB_DRIVER"),
		DatabaseDSN:         v.GetString("DATABASE_DSN"),
		TokenSecret:         v.GetString("TOKEN_SECRET"),
		TokenTTL:            v.GetDuration("TOKEN_TTL"),
		StorageDriver:       v.GetString("STORAGE_DRIVER"),
		StorageRoot:         v.GetString("STORAGE_ROOT"),
		PruneReplacedImages: v.GetBool("PRUNE_REPLACED_IMAGES"),
		S3Bucket:            v.GetString("S3_BUCKET"),
		S3Region:            v.GetString("S3_REGION"),
		S3Endpoint:          v.GetString("S3_ENDPOINT"),
		S3AccessKey:         v.GetString("S3_ACCESS_KEY"),
		S3SecretKey:         v.GetString("S3_SECRET_KEY"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the combinations the service cannot start with.
func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return errors.New("TOKEN_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.StorageDriver {
	case "local":
		if c.StorageRoot == "" {
			return errors.New("STORAGE_ROOT is required for the local storage driver")
		}
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.BodyLimitMB <= 0 {
		return fmt.Errorf("BODY_LIMIT_MB must be positive, got %d", c.BodyLimitMB)
	}
	return nil
}
