package repositories_test

import (
	"context"
	"testing"
	"time"

	"shopapi/internal/database"
	"shopapi/internal/models"
	"shopapi/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMUserRepository(t *testing.T) {
	repo := repositories.NewGORMUserRepository(database.OpenTest(t))
	ctx := context.Background()

	user := &models.User{Name: "Alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "hash", got.Password)

	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	exists, err := repo.ExistsByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestGORMUserRepository_DuplicateEmail(t *testing.T) {
	repo := repositories.NewGORMUserRepository(database.OpenTest(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Name: "A", Email: "a@example.com", Password: "x"}))
	err := repo.Create(ctx, &models.User{Name: "B", Email: "a@example.com", Password: "y"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
}

func TestGORMAccessTokenRepository_Revoke(t *testing.T) {
	db := database.OpenTest(t)
	users := repositories.NewGORMUserRepository(db)
	tokens := repositories.NewGORMAccessTokenRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "A", Email: "a@example.com", Password: "x"}
	require.NoError(t, users.Create(ctx, user))

	token := &models.AccessToken{
		UserID:    user.ID,
		Name:      "authToken",
		TokenHash: "digest",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, tokens.Create(ctx, token))
	assert.NotEmpty(t, token.ID)

	first := time.Now().Add(-time.Minute).UTC().Truncate(time.Second)
	require.NoError(t, tokens.Revoke(ctx, token.ID, first))
	require.NoError(t, tokens.Revoke(ctx, token.ID, time.Now()))

	got, err := tokens.GetByID(ctx, token.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RevokedAt)
	assert.True(t, got.Revoked())
	assert.True(t, got.RevokedAt.Equal(first), "second revoke must not move revoked_at")

	_, err = tokens.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrAccessTokenNotFound)
}

func TestGORMProductRepository_CRUD(t *testing.T) {
	repo := repositories.NewGORMProductRepository(database.OpenTest(t))
	ctx := context.Background()

	product := &models.Product{Name: "P1", Description: "D1", Qty: 1, Price: 9.5, Image: "images/a.jpg"}
	require.NoError(t, repo.Create(ctx, product))
	assert.NotEmpty(t, product.ID)

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "P1", got.Name)
	assert.Equal(t, 9.5, got.Price)

	got.Qty = 0
	got.Description = ""
	got.Image = "images/b.png"
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Qty, "zero values are written on update")
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, "images/b.png", updated.Image)

	require.NoError(t, repo.Delete(ctx, product.ID))
	_, err = repo.GetByID(ctx, product.ID)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestGORMProductRepository_NotFound(t *testing.T) {
	repo := repositories.NewGORMProductRepository(database.OpenTest(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &models.Product{ID: "missing", Name: "x"}), repositories.ErrProductNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), repositories.ErrProductNotFound)
}

func TestGORMProductRepository_GetAllInInsertionOrder(t *testing.T) {
	repo := repositories.NewGORMProductRepository(database.OpenTest(t))
	ctx := context.Background()

	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	base := time.Now().Add(-time.Hour)
	names := []string{"first", "second", "third"}
	for i, name := range names {
		p := &models.Product{Name: name, Description: "d", Qty: i, Price: 1, Image: "images/x.jpg"}
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, p))
	}

	products, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	for i, name := range names {
		assert.Equal(t, name, products[i].Name)
		assert.Equal(t, "images/x.jpg", products[i].Image)
	}
}
