package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFilterMatches(t *testing.T) {
	ceiling := 10.0
	product := &Product{ID: "FF001", Category: "Tacos & Wraps", Price: 10.0}

	// ceiling is inclusive
	assert.True(t, CatalogFilter{PriceCeiling: &ceiling}.Matches(product))

	over := 9.99
	assert.False(t, CatalogFilter{PriceCeiling: &over}.Matches(product))

	// category matching is a case-insensitive substring test
	assert.True(t, CatalogFilter{Category: "taco"}.Matches(product))
	assert.True(t, CatalogFilter{Category: "WRAPS"}.Matches(product))
	assert.False(t, CatalogFilter{Category: "Pizza"}.Matches(product))

	// the zero filter matches everything
	assert.True(t, CatalogFilter{}.Matches(product))
}

func TestFilterFromIntent(t *testing.T) {
	budget := 12.0
	filter := FilterFromIntent(Intent{Category: "Pizza", Budget: &budget})
	assert.Equal(t, "Pizza", filter.Category)
	require.NotNil(t, filter.PriceCeiling)
	assert.Equal(t, 12.0, *filter.PriceCeiling)

	empty := FilterFromIntent(Intent{})
	assert.Empty(t, empty.Category)
	assert.Nil(t, empty.PriceCeiling)
}
