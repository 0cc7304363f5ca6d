package bot

import "github.com/chrisdamba/foodiebot/internal/models"

// SessionStats summarises the interest-score progression of one session.
type SessionStats struct {
	Turns         int     `json:"turns"`
	AvgInterest   float64 `json:"avg_interest"`
	MinInterest   int     `json:"min_interest"`
	MaxInterest   int     `json:"max_interest"`
	FinalInterest int     `json:"final_interest"`
	Progression   []int   `json:"progression"`
}

func ComputeSessionStats(session *models.Session) SessionStats {
	progression := session.InterestProgression()
	stats := SessionStats{
		Turns:       len(progression),
		Progression: progression,
	}
	if len(progression) == 0 {
		return stats
	}

	total := 0
	stats.MinInterest = progression[0]
	stats.MaxInterest = progression[0]
	for _, score := range progression {
		total += score
		if score < stats.MinInterest {
			stats.MinInterest = score
		}
		if score > stats.MaxInterest {
			stats.MaxInterest = score
		}
	}
	stats.AvgInterest = float64(total) / float64(len(progression))
	stats.FinalInterest = progression[len(progression)-1]
	return stats
}
