package bot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chrisdamba/foodiebot/internal/models"
	"github.com/chrisdamba/foodiebot/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingConversationLog always refuses the append, standing in for an
// unreachable store.
type failingConversationLog struct{}

func (f *failingConversationLog) Append(ctx context.Context, turn *models.ConversationTurn) error {
	return fmt.Errorf("conversation store unreachable")
}

func (f *failingConversationLog) GetBySession(ctx context.Context, sessionID string) ([]*models.ConversationTurn, error) {
	return nil, fmt.Errorf("conversation store unreachable")
}

func (f *failingConversationLog) Count(ctx context.Context) (int, error) {
	return 0, fmt.Errorf("conversation store unreachable")
}

func (f *failingConversationLog) DeleteAll(ctx context.Context) error {
	return fmt.Errorf("conversation store unreachable")
}

func newTestBot(t *testing.T) *Bot {
	t.Helper()

	repo := memory.NewProductRepository()
	_, err := repo.SeedIfEmpty(context.Background(), burgerCatalog())
	require.NoError(t, err)

	return &Bot{
		Config:   &models.Config{RecommendationLimit: 10},
		Session:  &models.Session{ID: "test-session", StartedAt: time.Now()},
		fallback: NewRecommendationEngine(repo, 10),
	}
}

func TestProcessMessageProducesTurn(t *testing.T) {
	b := newTestBot(t)

	turn, recommendations := b.ProcessMessage(context.Background(), "spicy burger under $10")

	require.NotNil(t, turn)
	assert.Equal(t, "spicy burger under $10", turn.UserMessage)
	assert.Equal(t, "I found 2 good matches for you!", turn.BotResponse)
	assert.Equal(t, "test-session", turn.SessionID)
	assert.Len(t, recommendations, 2)
	assert.Len(t, turn.RecommendedProducts, 2)
	assert.Equal(t, "Classic All-American Burger", turn.RecommendedProducts[0].Name)
}

func TestProcessMessageNoMatchStillResponds(t *testing.T) {
	b := newTestBot(t)

	turn, recommendations := b.ProcessMessage(context.Background(), "dessert under $1")

	require.NotNil(t, turn)
	assert.Empty(t, recommendations)
	assert.Equal(t, "Hmm, I couldn't find a perfect match. Try rephrasing.", turn.BotResponse)
}

func TestProcessMessageSurvivesLogFailure(t *testing.T) {
	b := newTestBot(t)
	b.convLog = &failingConversationLog{}

	turn, _ := b.ProcessMessage(context.Background(), "spicy burger under $10")

	// the append failure is logged, never propagated
	require.NotNil(t, turn)
	assert.Len(t, b.Session.Turns, 1)
}

func TestProcessMessageAppendsTurnsInOrder(t *testing.T) {
	b := newTestBot(t)
	messages := []string{"burger?", "maybe not", "I'll take it!"}

	for _, message := range messages {
		b.ProcessMessage(context.Background(), message)
	}

	require.Len(t, b.Session.Turns, 3)
	for i, message := range messages {
		assert.Equal(t, message, b.Session.Turns[i].UserMessage)
	}
}

func TestBuildResponse(t *testing.T) {
	assert.Equal(t, "Hmm, I couldn't find a perfect match. Try rephrasing.", BuildResponse(nil))

	recommendations := []models.ScoredProduct{
		{Product: &models.Product{ID: "FF001"}},
		{Product: &models.Product{ID: "FF002"}},
		{Product: &models.Product{ID: "FF003"}},
	}
	assert.Equal(t, "I found 3 good matches for you!", BuildResponse(recommendations))
}
