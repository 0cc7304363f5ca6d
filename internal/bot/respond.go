package bot

import (
	"fmt"

	"github.com/chrisdamba/foodiebot/internal/models"
)

// BuildResponse assembles the user-facing reply for one turn. The system
// always answers; zero matches is a valid outcome, not an error.
func BuildResponse(recommendations []models.ScoredProduct) string {
	if len(recommendations) == 0 {
		return "Hmm, I couldn't find a perfect match. Try rephrasing."
	}
	return fmt.Sprintf("I found %d good matches for you!", len(recommendations))
}
