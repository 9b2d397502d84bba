package repositories_test

import (
	"context"
	"testing"

	"shopapi/internal/models"
	"shopapi/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProductRepository(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()
	ctx := context.Background()

	a := &models.Product{Name: "A"}
	b := &models.Product{Name: "B"}
	c := &models.Product{Name: "C"}
	for _, p := range []*models.Product{a, b, c} {
		require.NoError(t, repo.Create(ctx, p))
	}

	b.Name = "B2"
	require.NoError(t, repo.Update(ctx, b))
	require.NoError(t, repo.Delete(ctx, a.ID))

	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "B2", products[0].Name)
	assert.Equal(t, "C", products[1].Name)

	_, err = repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &models.Product{ID: a.ID}), repositories.ErrProductNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), repositories.ErrProductNotFound)
}
