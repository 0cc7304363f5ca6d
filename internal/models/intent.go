package models

// Intent holds the structured signals extracted from one user message.
// Empty string / nil fields mean the signal was absent from the text.
type Intent struct {
	Mood     string   `json:"mood,omitempty"`
	Category string   `json:"category,omitempty"`
	Budget   *float64 `json:"budget,omitempty"`
	Keywords []string `json:"keywords"`
}

func (i Intent) HasBudget() bool {
	return i.Budget != nil
}
