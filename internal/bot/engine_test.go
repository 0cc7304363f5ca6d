package bot

import (
	"context"
	"testing"

	"github.com/chrisdamba/foodiebot/internal/models"
	"github.com/chrisdamba/foodiebot/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func burgerCatalog() []*models.Product {
	return []*models.Product{
		{
			ID:              "FF001",
			Name:            "Spicy Fusion Dragon Burger",
			Category:        models.CategoryBurgers,
			Price:           9.99,
			PopularityScore: 80,
			MoodTags:        []string{"spicy"},
		},
		{
			ID:              "FF002",
			Name:            "Classic All-American Burger",
			Category:        models.CategoryBurgers,
			Price:           8.50,
			PopularityScore: 95,
			MoodTags:        []string{"comfort"},
		},
	}
}

func seededEngine(t *testing.T, products []*models.Product, limit int) *RecommendationEngine {
	t.Helper()
	repo := memory.NewProductRepository()
	_, err := repo.SeedIfEmpty(context.Background(), products)
	require.NoError(t, err)
	return NewRecommendationEngine(repo, limit)
}

func TestRecommendEndToEndScenario(t *testing.T) {
	engine := seededEngine(t, burgerCatalog(), 10)
	intent := ExtractIntent("spicy burger under $10")

	results, err := engine.Recommend(context.Background(), intent)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Classic: 95 popularity + category bonus + "burger" in name = 97.
	// Dragon: 80 popularity + mood + category + "spicy" and "burger" in
	// name = 84. The keyword and mood bonuses do not close the 15-point
	// popularity gap.
	assert.Equal(t, "FF002", results[0].Product.ID)
	assert.Equal(t, 97, results[0].MatchScore)
	assert.Equal(t, "FF001", results[1].Product.ID)
	assert.Equal(t, 84, results[1].MatchScore)
}

func TestRecommendDeterministic(t *testing.T) {
	engine := seededEngine(t, burgerCatalog(), 10)
	intent := ExtractIntent("spicy burger under $10")

	first, err := engine.Recommend(context.Background(), intent)
	require.NoError(t, err)
	second, err := engine.Recommend(context.Background(), intent)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Product.ID, second[i].Product.ID)
		assert.Equal(t, first[i].MatchScore, second[i].MatchScore)
	}
}

func TestRecommendBudgetFilter(t *testing.T) {
	engine := seededEngine(t, burgerCatalog(), 10)
	intent := models.Intent{Budget: floatPtr(9.0)}

	results, err := engine.Recommend(context.Background(), intent)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, result := range results {
		assert.LessOrEqual(t, result.Product.Price, 9.0)
	}
}

func TestRecommendEmptyResultIsNotAnError(t *testing.T) {
	engine := seededEngine(t, burgerCatalog(), 10)
	intent := models.Intent{Budget: floatPtr(1.0)}

	results, err := engine.Recommend(context.Background(), intent)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRankProductsOrdersByScore(t *testing.T) {
	low := &models.Product{ID: "low", Name: "Low", PopularityScore: 70}
	high := &models.Product{ID: "high", Name: "High", PopularityScore: 90}

	// the 90-score item must come first regardless of insertion order
	for _, products := range [][]*models.Product{{low, high}, {high, low}} {
		ranked := RankProducts(products, models.Intent{}, 10)
		require.Len(t, ranked, 2)
		assert.Equal(t, "high", ranked[0].Product.ID)
		assert.Equal(t, 90, ranked[0].MatchScore)
		assert.Equal(t, "low", ranked[1].Product.ID)
	}
}

func TestRankProductsStableTiebreak(t *testing.T) {
	first := &models.Product{ID: "first", Name: "First", PopularityScore: 80}
	second := &models.Product{ID: "second", Name: "Second", PopularityScore: 80}

	ranked := RankProducts([]*models.Product{first, second}, models.Intent{}, 10)
	require.Len(t, ranked, 2)
	assert.Equal(t, "first", ranked[0].Product.ID)
	assert.Equal(t, "second", ranked[1].Product.ID)
}

func TestRankProductsCategoryDoubleCount(t *testing.T) {
	product := &models.Product{
		ID:              "FF001",
		Name:            "Plain",
		Category:        models.CategoryBurgers,
		PopularityScore: 50,
	}

	// the filter already narrowed by category; the scoring bonus still
	// rewards the match on top of it
	ranked := RankProducts([]*models.Product{product}, models.Intent{Category: models.CategoryBurgers}, 10)
	require.Len(t, ranked, 1)
	assert.Equal(t, 51, ranked[0].MatchScore)
	assert.Contains(t, ranked[0].Reasons, ReasonCategoryMatch)
}

func TestRankProductsKeywordDuplicatesCountTwice(t *testing.T) {
	product := &models.Product{
		ID:              "FF001",
		Name:            "Cheese Burger",
		PopularityScore: 50,
	}

	intent := models.Intent{Keywords: []string{"cheese", "cheese"}}
	ranked := RankProducts([]*models.Product{product}, intent, 10)
	require.Len(t, ranked, 1)
	assert.Equal(t, 52, ranked[0].MatchScore)
}

func TestRankProductsIngredientMatch(t *testing.T) {
	product := &models.Product{
		ID:              "FF001",
		Name:            "Mystery Box",
		Description:     "A surprise.",
		Ingredients:     []string{"Smoked Cheddar", "Lettuce"},
		PopularityScore: 40,
	}

	intent := models.Intent{Keywords: []string{"cheddar"}}
	ranked := RankProducts([]*models.Product{product}, intent, 10)
	require.Len(t, ranked, 1)
	assert.Equal(t, 41, ranked[0].MatchScore)
}

func TestRankProductsLimitTruncates(t *testing.T) {
	var products []*models.Product
	for i := 0; i < 15; i++ {
		products = append(products, &models.Product{
			ID:              string(rune('a' + i)),
			Name:            "Item",
			PopularityScore: 100 - i,
		})
	}

	ranked := RankProducts(products, models.Intent{}, 10)
	assert.Len(t, ranked, 10)

	// limit <= 0 falls back to the default
	ranked = RankProducts(products, models.Intent{}, 0)
	assert.Len(t, ranked, models.DefaultRecommendationLimit)
}
