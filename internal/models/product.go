package models

// Product is a single catalog item. Products are immutable once seeded;
// the recommendation engine only ever reads them.
type Product struct {
	ID              string   `json:"product_id" mapstructure:"product_id"`
	Name            string   `json:"name" mapstructure:"name"`
	Category        string   `json:"category" mapstructure:"category"`
	Description     string   `json:"description" mapstructure:"description"`
	Ingredients     []string `json:"ingredients" mapstructure:"ingredients"`
	Price           float64  `json:"price" mapstructure:"price"`
	Calories        int      `json:"calories" mapstructure:"calories"`
	PrepTime        string   `json:"prep_time" mapstructure:"prep_time"`
	DietaryTags     []string `json:"dietary_tags" mapstructure:"dietary_tags"`
	MoodTags        []string `json:"mood_tags" mapstructure:"mood_tags"`
	Allergens       []string `json:"allergens" mapstructure:"allergens"`
	PopularityScore int      `json:"popularity_score" mapstructure:"popularity_score"`
	ChefSpecial     bool     `json:"chef_special" mapstructure:"chef_special"`
	LimitedTime     bool     `json:"limited_time" mapstructure:"limited_time"`
	SpiceLevel      int      `json:"spice_level" mapstructure:"spice_level"`
	ImagePrompt     string   `json:"image_prompt" mapstructure:"image_prompt"`
}

// ProductSummary is the subset of product fields persisted with each
// conversation turn.
type ProductSummary struct {
	ID          string  `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
	}
}
