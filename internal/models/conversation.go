package models

import "time"

// ConversationTurn is one user message with the bot's reply and the
// signals derived from it. Turns are append-only and never mutated.
type ConversationTurn struct {
	Timestamp           time.Time        `json:"timestamp"`
	UserMessage         string           `json:"user_message"`
	BotResponse         string           `json:"bot_response"`
	InterestScore       int              `json:"interest_score"`
	RecommendedProducts []ProductSummary `json:"recommended_products"`
	SessionID           string           `json:"session_id"`
}

// Session is the explicit per-conversation record passed into the core.
// The bot holds no process-wide mutable state outside of it.
type Session struct {
	ID        string             `json:"session_id"`
	StartedAt time.Time          `json:"started_at"`
	Turns     []ConversationTurn `json:"turns"`
}

func (s *Session) AddTurn(turn ConversationTurn) {
	s.Turns = append(s.Turns, turn)
}

// InterestProgression returns the interest score of every turn in order.
func (s *Session) InterestProgression() []int {
	scores := make([]int, len(s.Turns))
	for i, turn := range s.Turns {
		scores[i] = turn.InterestScore
	}
	return scores
}
