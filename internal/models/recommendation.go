package models

import "strings"

// ScoredProduct is a catalog item together with the match score computed
// for one recommendation call. Reasons carry human-readable explanations
// of every bonus that contributed on top of the popularity baseline.
type ScoredProduct struct {
	Product    *Product `json:"product"`
	MatchScore int      `json:"match_score"`
	Reasons    []string `json:"reasons,omitempty"`
}

// CatalogFilter narrows a catalog snapshot before scoring. The in-memory
// catalog applies Matches directly; the Postgres catalog pushes the same
// semantics down as "price <= ceiling" and "category ILIKE '%…%'".
type CatalogFilter struct {
	PriceCeiling *float64
	Category     string
}

func FilterFromIntent(intent Intent) CatalogFilter {
	return CatalogFilter{
		PriceCeiling: intent.Budget,
		Category:     intent.Category,
	}
}

// Matches reports whether the product survives the filter. The price
// ceiling is inclusive and the category check is a case-insensitive
// substring test.
func (f CatalogFilter) Matches(p *Product) bool {
	if f.PriceCeiling != nil && p.Price > *f.PriceCeiling {
		return false
	}
	if f.Category != "" && !strings.Contains(strings.ToLower(p.Category), strings.ToLower(f.Category)) {
		return false
	}
	return true
}
