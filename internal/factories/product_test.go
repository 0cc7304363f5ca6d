package factories

import (
	"testing"

	"github.com/chrisdamba/foodiebot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCatalog(t *testing.T) {
	factory := &ProductFactory{}
	products := factory.CreateCatalog()

	require.Len(t, products, 20)

	validCategories := make(map[string]struct{})
	for _, category := range models.Categories {
		validCategories[category] = struct{}{}
	}

	seen := make(map[string]struct{})
	for _, product := range products {
		_, duplicate := seen[product.ID]
		assert.False(t, duplicate, "duplicate product id %s", product.ID)
		seen[product.ID] = struct{}{}

		_, ok := validCategories[product.Category]
		assert.True(t, ok, "unexpected category %q", product.Category)

		assert.NotEmpty(t, product.Name)
		assert.NotEmpty(t, product.Description)
		assert.NotEmpty(t, product.Ingredients)
		assert.GreaterOrEqual(t, product.Price, 5.0)
		assert.LessOrEqual(t, product.Price, 25.0)
		assert.GreaterOrEqual(t, product.Calories, 150)
		assert.LessOrEqual(t, product.Calories, 900)
		assert.GreaterOrEqual(t, product.PopularityScore, 60)
		assert.LessOrEqual(t, product.PopularityScore, 100)
		assert.GreaterOrEqual(t, product.SpiceLevel, 0)
		assert.LessOrEqual(t, product.SpiceLevel, 10)
		assert.Len(t, product.DietaryTags, 2)
		assert.Len(t, product.MoodTags, 2)
		assert.Len(t, product.Allergens, 1)
	}
}

func TestCreateCatalogStableIDs(t *testing.T) {
	factory := &ProductFactory{}
	first := factory.CreateCatalog()
	second := factory.CreateCatalog()

	// IDs and names are fixed across runs; only generated fields vary
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].Category, second[i].Category)
	}

	assert.Equal(t, "FF001", first[0].ID)
	assert.Equal(t, "Spicy Fusion Dragon Burger", first[0].Name)
}

func TestCreateSession(t *testing.T) {
	factory := &SessionFactory{}
	first := factory.CreateSession()
	second := factory.CreateSession()

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.StartedAt.IsZero())
	assert.Empty(t, first.Turns)
}
