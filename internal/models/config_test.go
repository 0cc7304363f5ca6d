package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProduct(t *testing.T) {
	raw := map[string]interface{}{
		"product_id":       "FF001",
		"name":             "Spicy Fusion Dragon Burger",
		"category":         "Burgers",
		"price":            "9.99",
		"calories":         "780",
		"chef_special":     "1",
		"limited_time":     1,
		"popularity_score": 80,
		"mood_tags":        []interface{}{"spicy", "adventurous"},
	}

	product, err := NormalizeProduct(raw)
	require.NoError(t, err)

	assert.Equal(t, "FF001", product.ID)
	assert.Equal(t, 9.99, product.Price)
	assert.Equal(t, 780, product.Calories)
	assert.True(t, product.ChefSpecial)
	assert.True(t, product.LimitedTime)
	assert.Equal(t, 80, product.PopularityScore)
	assert.Equal(t, []string{"spicy", "adventurous"}, product.MoodTags)

	// absent numeric fields default to zero
	assert.Equal(t, 0, product.SpiceLevel)
}

func TestNormalizeProductRejectsBadRecords(t *testing.T) {
	_, err := NormalizeProduct(map[string]interface{}{"name": "Nameless"})
	assert.ErrorContains(t, err, "product_id")

	_, err = NormalizeProduct(map[string]interface{}{"product_id": "FF009"})
	assert.ErrorContains(t, err, "name")

	_, err = NormalizeProduct(map[string]interface{}{
		"product_id": "FF009",
		"name":       "Freebie",
		"price":      -1.50,
	})
	assert.ErrorContains(t, err, "negative price")
}
