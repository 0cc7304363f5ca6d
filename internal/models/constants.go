package models

const (
	CategoryBurgers      = "Burgers"
	CategoryPizza        = "Pizza"
	CategoryFriedChicken = "Fried Chicken"
	CategoryTacosWraps   = "Tacos & Wraps"
	CategoryDesserts     = "Desserts"

	MoodSpicy       = "spicy"
	MoodComfort     = "comfort"
	MoodAdventurous = "adventurous"
	MoodHealthy     = "healthy"
	MoodIndulgent   = "indulgent"

	TopicConversationEvents   = "conversation_events"
	TopicRecommendationEvents = "recommendation_events"
	TopicSessionMetricsEvents = "session_metrics_events"

	DefaultRecommendationLimit = 10
	DefaultSeedBatchSize       = 50
)

// Categories lists the fixed catalog categories in their canonical order.
var Categories = []string{
	CategoryBurgers,
	CategoryPizza,
	CategoryFriedChicken,
	CategoryTacosWraps,
	CategoryDesserts,
}

var MoodTags = []string{MoodSpicy, MoodComfort, MoodAdventurous, MoodHealthy, MoodIndulgent}

var DietaryTags = []string{"spicy", "vegan", "gluten-free", "classic", "gourmet"}

var Allergens = []string{"gluten", "dairy", "soy", "nuts"}
