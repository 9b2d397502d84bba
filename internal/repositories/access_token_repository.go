package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopapi/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessTokenRepository defines the interface for access token persistence.
type AccessTokenRepository interface {
	Create(ctx context.Context, token *models.AccessToken) error
	GetByID(ctx context.Context, id string) (*models.AccessToken, error)
	Revoke(ctx context.Context, id string, at time.Time) error
}

// GORMAccessTokenRepository is a GORM implementation of AccessTokenRepository.
type GORMAccessTokenRepository struct {
	db *gorm.DB
}

// NewGORMAccessTokenRepository creates a new instance of GORMAccessTokenRepository.
func NewGORMAccessTokenRepository(db *gorm.DB) *GORMAccessTokenRepository {
	return &GORMAccessTokenRepository{db: db}
}

// Create stores a new token row.
func (r *GORMAccessTokenRepository) Create(ctx context.Context, token *models.AccessToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("failed to create access token: %w", err)
	}
	return nil
}

// GetByID loads a token row by its id.
func (r *GORMAccessTokenRepository) GetByID(ctx context.Context, id string) (*models.AccessToken, error) {
	var token models.AccessToken
	if err := r.db.WithContext(ctx).First(&token, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessTokenNotFound
		}
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}
	return &token, nil
}

// Revoke marks a token as revoked. Revoking an already revoked token leaves
// the original revocation time untouched.
func (r *GORMAccessTokenRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.AccessToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at)
	if res.Error != nil {
		return fmt.Errorf("failed to revoke access token: %w", res.Error)
	}
	return nil
}
