package bot

import (
	"regexp"
	"strings"
)

type interestRule struct {
	name    string
	pattern *regexp.Regexp
	weight  int
}

// interestRules is the ordered lexical rule table behind InterestScore.
// Every rule is evaluated independently against the lowercased text; the
// rules are not mutually exclusive.
var interestRules = []interestRule{
	{"food_noun", regexp.MustCompile(`spicy|vegan|cheese|burger|pizza|taco|wrap|salad`), 15},
	{"vegetarian", regexp.MustCompile(`vegetarian|vegan`), 10},
	{"price_sensitivity", regexp.MustCompile(`\$|\bunder\b|\bbelow\b`), 5},
	{"emotional_state", regexp.MustCompile(`happy|adventurous|tired|sad|hungry|indulgent`), 20},
	{"question", regexp.MustCompile(`\?`), 10},
	{"positive_sentiment", regexp.MustCompile(`love|perfect|amazing|great|yum|yummy`), 8},
	{"pricing_intent", regexp.MustCompile(`how much|price|\$\d+`), 25},
	{"purchase_intent", regexp.MustCompile(`order|add to cart|take it|buy`), 30},
	{"hesitation", regexp.MustCompile(`\bmaybe\b|\bnot sure\b`), -10},
	{"price_objection", regexp.MustCompile(`expensive`), -15},
	{"rejection", regexp.MustCompile(`\bdon'?t like\b|\bnot for me\b|\bhate\b`), -25},
}

// InterestScore maps free text to an engagement score in [0,100]. The raw
// sum of all matching rule weights is clamped; empty text scores zero.
func InterestScore(text string) int {
	if text == "" {
		return 0
	}
	lowered := strings.ToLower(text)

	score := 0
	for _, rule := range interestRules {
		if rule.pattern.MatchString(lowered) {
			score += rule.weight
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
