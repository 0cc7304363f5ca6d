package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/chrisdamba/foodiebot/internal/models"
)

// Match reason constants
const (
	ReasonMoodMatch     = "mood match"
	ReasonCategoryMatch = "category match"
)

// CatalogSource is the capability the engine needs from a catalog: a
// filtered snapshot. Both the Postgres catalog and the in-memory fallback
// satisfy it, so disk-backed and fallback paths share identical scoring.
type CatalogSource interface {
	Query(ctx context.Context, filter models.CatalogFilter) ([]*models.Product, error)
}

// RecommendationEngine ranks catalog items against an extracted intent.
type RecommendationEngine struct {
	catalog CatalogSource
	limit   int
}

func NewRecommendationEngine(catalog CatalogSource, limit int) *RecommendationEngine {
	if limit <= 0 {
		limit = models.DefaultRecommendationLimit
	}
	return &RecommendationEngine{catalog: catalog, limit: limit}
}

// Recommend filters the catalog by the intent's budget and category, then
// ranks the survivors. An intent that matches nothing yields an empty
// slice and no error; storage failures surface to the caller, who picks
// a fallback source.
func (e *RecommendationEngine) Recommend(ctx context.Context, intent models.Intent) ([]models.ScoredProduct, error) {
	candidates, err := e.catalog.Query(ctx, models.FilterFromIntent(intent))
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	return RankProducts(candidates, intent, e.limit), nil
}

// RankProducts scores every candidate and returns the top matches,
// best-first. Scoring starts from the item's popularity baseline and adds
// +1 for a mood-tag match, +1 for a category match (the filter already
// narrowed by category; rewarding it again here is intentional), and +1
// per keyword occurrence in the name, description or any ingredient.
// Duplicate keywords count every time. The sort is stable, so ties keep
// catalog snapshot order, and the result is deterministic for a given
// snapshot and intent.
func RankProducts(products []*models.Product, intent models.Intent, limit int) []models.ScoredProduct {
	if limit <= 0 {
		limit = models.DefaultRecommendationLimit
	}

	scored := make([]models.ScoredProduct, 0, len(products))
	for _, product := range products {
		scored = append(scored, scoreProduct(product, intent))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func scoreProduct(product *models.Product, intent models.Intent) models.ScoredProduct {
	result := models.ScoredProduct{
		Product:    product,
		MatchScore: product.PopularityScore,
	}

	if intent.Mood != "" && containsTag(product.MoodTags, intent.Mood) {
		result.MatchScore++
		result.Reasons = append(result.Reasons, ReasonMoodMatch)
	}

	if intent.Category != "" &&
		strings.Contains(strings.ToLower(product.Category), strings.ToLower(intent.Category)) {
		result.MatchScore++
		result.Reasons = append(result.Reasons, ReasonCategoryMatch)
	}

	name := strings.ToLower(product.Name)
	description := strings.ToLower(product.Description)
	for _, keyword := range intent.Keywords {
		if strings.Contains(name, keyword) {
			result.MatchScore++
			result.Reasons = append(result.Reasons, fmt.Sprintf("keyword %q in name", keyword))
		}
		if strings.Contains(description, keyword) {
			result.MatchScore++
			result.Reasons = append(result.Reasons, fmt.Sprintf("keyword %q in description", keyword))
		}
		if ingredientContains(product.Ingredients, keyword) {
			result.MatchScore++
			result.Reasons = append(result.Reasons, fmt.Sprintf("keyword %q in ingredients", keyword))
		}
	}

	return result
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func ingredientContains(ingredients []string, keyword string) bool {
	for _, ingredient := range ingredients {
		if strings.Contains(strings.ToLower(ingredient), keyword) {
			return true
		}
	}
	return false
}
