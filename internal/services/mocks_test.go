package services_test

import (
	"context"
	"time"

	"shopapi/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = "user-123"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

// MockAccessTokenRepository is a mock implementation of repositories.AccessTokenRepository
type MockAccessTokenRepository struct {
	mock.Mock
}

func (m *MockAccessTokenRepository) Create(ctx context.Context, token *models.AccessToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockAccessTokenRepository) GetByID(ctx context.Context, id string) (*models.AccessToken, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccessToken), args.Error(1)
}

func (m *MockAccessTokenRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher records published domain events.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	args := m.Called(routingKey, payload)
	return args.Error(0)
}

// MockAssetStore is a mock implementation of storage.AssetStore
type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) Put(ctx context.Context, dir string, upload *models.Upload) (string, error) {
	args := m.Called(dir, upload)
	return args.String(0), args.Error(1)
}

func (m *MockAssetStore) Delete(ctx context.Context, path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockAssetStore) Exists(ctx context.Context, path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}
