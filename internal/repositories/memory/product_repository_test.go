package memory

import (
	"context"
	"testing"

	"github.com/chrisdamba/foodiebot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func testProducts() []*models.Product {
	return []*models.Product{
		{ID: "FF001", Name: "Spicy Fusion Dragon Burger", Category: "Burgers", Price: 9.99},
		{ID: "FF002", Name: "Margherita Classica", Category: "Pizza", Price: 12.50},
		{ID: "FF003", Name: "Brownie", Category: "Desserts", Price: 4.25},
	}
}

func TestSeedIfEmptyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	inserted, err := repo.SeedIfEmpty(ctx, testProducts())
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	// second seeding is a no-op on a populated store
	inserted, err = repo.SeedIfEmpty(ctx, testProducts())
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestQueryAppliesFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	_, err := repo.SeedIfEmpty(ctx, testProducts())
	require.NoError(t, err)

	// inclusive price ceiling
	results, err := repo.Query(ctx, models.CatalogFilter{PriceCeiling: floatPtr(9.99)})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "FF001", results[0].ID)
	assert.Equal(t, "FF003", results[1].ID)

	// case-insensitive category substring
	results, err = repo.Query(ctx, models.CatalogFilter{Category: "pizza"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "FF002", results[0].ID)

	// combined filter matching nothing
	results, err = repo.Query(ctx, models.CatalogFilter{PriceCeiling: floatPtr(5), Category: "Pizza"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetAllPreservesSeedOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	_, err := repo.SeedIfEmpty(ctx, testProducts())
	require.NoError(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "FF001", all[0].ID)
	assert.Equal(t, "FF002", all[1].ID)
	assert.Equal(t, "FF003", all[2].ID)
}

func TestDeleteAll(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	_, err := repo.SeedIfEmpty(ctx, testProducts())
	require.NoError(t, err)

	require.NoError(t, repo.DeleteAll(ctx))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
