package factories

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/chrisdamba/foodiebot/internal/models"
	"github.com/jaswdr/faker"
)

var fake = faker.New()

type ProductFactory struct{}

// canonicalMenu maps every catalog category to its fixed item names.
// Keyed access goes through models.Categories to keep product IDs stable
// across runs.
var canonicalMenu = map[string][]string{
	models.CategoryBurgers:      {"Spicy Fusion Dragon Burger", "Classic All-American Burger", "Plant-Based Beyond Burger", "BBQ Bacon Cheeseburger"},
	models.CategoryPizza:        {"Margherita Classica", "Meat Lovers Supreme", "BBQ Chicken Pineapple", "Vegan Mediterranean"},
	models.CategoryFriedChicken: {"Nashville Hot Wings", "Honey Garlic Tenders", "Korean Fried Chicken", "Classic Fried Chicken"},
	models.CategoryTacosWraps:   {"Korean Beef Taco", "Crispy Fish Taco", "Buffalo Chicken Wrap", "Veggie Hummus Wrap"},
	models.CategoryDesserts:     {"Chocolate Cake Slice", "Ice Cream Sundae", "Mini Cheesecake", "Brownie"},
}

// CreateCatalog builds the canonical 20-item catalog. IDs and names are
// fixed; prices, tags and scores are generated per run.
func (pf *ProductFactory) CreateCatalog() []*models.Product {
	var products []*models.Product
	pid := 1
	for _, category := range models.Categories {
		for _, name := range canonicalMenu[category] {
			products = append(products, pf.createProduct(pid, name, category))
			pid++
		}
	}
	return products
}

func (pf *ProductFactory) createProduct(pid int, name, category string) *models.Product {
	return &models.Product{
		ID:              fmt.Sprintf("FF%03d", pid),
		Name:            name,
		Category:        category,
		Description:     fmt.Sprintf("%s, a delicious %s option.", name, strings.ToLower(category)),
		Ingredients:     []string{"main ingredient", "seasoning", "garnish"},
		Price:           fake.Float64(2, 5, 24),
		Calories:        fake.IntBetween(150, 900),
		PrepTime:        fmt.Sprintf("%d mins", fake.IntBetween(5, 18)),
		DietaryTags:     sampleTags(models.DietaryTags, 2),
		MoodTags:        sampleTags(models.MoodTags, 2),
		Allergens:       sampleTags(models.Allergens, 1),
		PopularityScore: fake.IntBetween(60, 100),
		ChefSpecial:     fake.Bool(),
		LimitedTime:     fake.Bool(),
		SpiceLevel:      fake.IntBetween(0, 10),
		ImagePrompt:     fmt.Sprintf("photo of %s", strings.ToLower(name)),
	}
}

// sampleTags picks k distinct tags from the pool.
func sampleTags(pool []string, k int) []string {
	if k >= len(pool) {
		k = len(pool)
	}
	indices := rand.Perm(len(pool))[:k]
	tags := make([]string, k)
	for i, idx := range indices {
		tags[i] = pool[idx]
	}
	return tags
}
