package bot

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/chrisdamba/foodiebot/internal/models"
)

// categoryTriggers maps trigger words to catalog categories. Order is the
// detection priority: the first trigger found in the text wins.
var categoryTriggers = []struct {
	word     string
	category string
}{
	{"burger", models.CategoryBurgers},
	{"pizza", models.CategoryPizza},
	{"chicken", models.CategoryFriedChicken},
	{"taco", models.CategoryTacosWraps},
	{"wrap", models.CategoryTacosWraps},
	{"dessert", models.CategoryDesserts},
	{"cake", models.CategoryDesserts},
	{"ice cream", models.CategoryDesserts},
}

// moodTriggers are scanned in order; the first mood found wins.
var moodTriggers = []string{
	models.MoodSpicy,
	models.MoodComfort,
	models.MoodAdventurous,
	models.MoodHealthy,
	models.MoodIndulgent,
}

// stopwords are dropped from keyword extraction: articles, pronouns and
// filler verbs that never discriminate between catalog items.
var stopwords = map[string]struct{}{
	"i":      {},
	"want":   {},
	"some":   {},
	"a":      {},
	"an":     {},
	"the":    {},
	"please": {},
	"order":  {},
}

var (
	budgetPattern = regexp.MustCompile(`under\s*\$?(\d+(?:\.\d+)?)`)
	wordPattern   = regexp.MustCompile(`\w+`)
)

// ExtractIntent parses free text into structured recommendation signals.
// It is pure and case-insensitive; empty or unparseable text yields a
// zero-valued intent, never an error.
func ExtractIntent(text string) models.Intent {
	lowered := strings.ToLower(text)
	intent := models.Intent{}

	for _, trigger := range categoryTriggers {
		if strings.Contains(lowered, trigger.word) {
			intent.Category = trigger.category
			break
		}
	}

	for _, mood := range moodTriggers {
		if strings.Contains(lowered, mood) {
			intent.Mood = mood
			break
		}
	}

	if match := budgetPattern.FindStringSubmatch(lowered); match != nil {
		if budget, err := strconv.ParseFloat(match[1], 64); err == nil {
			intent.Budget = &budget
		}
	}

	for _, token := range wordPattern.FindAllString(lowered, -1) {
		if _, skip := stopwords[token]; skip {
			continue
		}
		intent.Keywords = append(intent.Keywords, token)
	}

	return intent
}
