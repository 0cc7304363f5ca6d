package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chrisdamba/foodiebot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONOutputWritesPartitionedFiles(t *testing.T) {
	basePath := t.TempDir()
	output := NewJSONOutput(basePath, "output")

	timestamp := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	event := ConversationEvent{
		BaseEvent:     NewBaseEvent(models.TopicConversationEvents, "s1", timestamp),
		UserMessage:   "spicy burger under $10",
		BotResponse:   "I found 2 good matches for you!",
		InterestScore: 45,
	}
	msg, err := json.Marshal(event)
	require.NoError(t, err)

	require.NoError(t, output.WriteMessage(models.TopicConversationEvents, msg))
	require.NoError(t, output.Close())

	eventTime := time.Unix(timestamp.Unix(), 0)
	partition := fmt.Sprintf(
		"year=%d/month=%02d/day=%02d/hour=%02d",
		eventTime.Year(), eventTime.Month(), eventTime.Day(), eventTime.Hour(),
	)
	dataPath := filepath.Join(basePath, "output", models.TopicConversationEvents, partition, "data.json")

	data, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "spicy burger under $10")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data[:len(data)-1], &decoded))
	assert.Equal(t, float64(45), decoded["interestScore"])
}

func TestJSONOutputRejectsEventsWithoutTimestamp(t *testing.T) {
	output := NewJSONOutput(t.TempDir(), "output")
	err := output.WriteMessage(models.TopicConversationEvents, []byte(`{"eventType":"x"}`))
	assert.Error(t, err)
}

func TestGetSchemaKnownTopics(t *testing.T) {
	for _, topic := range []string{
		models.TopicConversationEvents,
		models.TopicRecommendationEvents,
		models.TopicSessionMetricsEvents,
	} {
		sh, err := GetSchema(topic)
		require.NoError(t, err, "topic: %s", topic)
		assert.NotNil(t, sh)
	}

	_, err := GetSchema("mystery_events")
	assert.Error(t, err)
}
