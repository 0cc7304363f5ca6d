package bot

import (
	"fmt"
	"log"
	"time"

	"github.com/chrisdamba/foodiebot/internal/models"
	"github.com/xitongsys/parquet-go/schema"
)

// BaseEvent is the common structure for all exported events
type BaseEvent struct {
	Timestamp int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	SessionID string `json:"sessionId" parquet:"name=sessionId,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// ConversationEvent records one processed turn
type ConversationEvent struct {
	BaseEvent
	UserMessage         string  `json:"userMessage" parquet:"name=userMessage,type=BYTE_ARRAY,convertedtype=UTF8"`
	BotResponse         string  `json:"botResponse" parquet:"name=botResponse,type=BYTE_ARRAY,convertedtype=UTF8"`
	InterestScore       int32   `json:"interestScore" parquet:"name=interestScore,type=INT32"`
	Mood                string  `json:"mood,omitempty" parquet:"name=mood,type=BYTE_ARRAY,convertedtype=UTF8"`
	Category            string  `json:"category,omitempty" parquet:"name=category,type=BYTE_ARRAY,convertedtype=UTF8"`
	Budget              float64 `json:"budget,omitempty" parquet:"name=budget,type=DOUBLE"`
	Keywords            string  `json:"keywords,omitempty" parquet:"name=keywords,type=BYTE_ARRAY,convertedtype=UTF8"`
	RecommendationCount int32   `json:"recommendationCount" parquet:"name=recommendationCount,type=INT32"`
}

// RecommendationEvent records one ranked item within a turn
type RecommendationEvent struct {
	BaseEvent
	ProductID       string  `json:"productId" parquet:"name=productId,type=BYTE_ARRAY,convertedtype=UTF8"`
	ProductName     string  `json:"productName" parquet:"name=productName,type=BYTE_ARRAY,convertedtype=UTF8"`
	Category        string  `json:"category" parquet:"name=category,type=BYTE_ARRAY,convertedtype=UTF8"`
	Price           float64 `json:"price" parquet:"name=price,type=DOUBLE"`
	Rank            int32   `json:"rank" parquet:"name=rank,type=INT32"`
	MatchScore      int32   `json:"matchScore" parquet:"name=matchScore,type=INT32"`
	PopularityScore int32   `json:"popularityScore" parquet:"name=popularityScore,type=INT32"`
	Reasons         string  `json:"reasons,omitempty" parquet:"name=reasons,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// SessionMetricsEvent summarises a finished session
type SessionMetricsEvent struct {
	BaseEvent
	Turns         int32   `json:"turns" parquet:"name=turns,type=INT32"`
	AvgInterest   float64 `json:"avgInterest" parquet:"name=avgInterest,type=DOUBLE"`
	MinInterest   int32   `json:"minInterest" parquet:"name=minInterest,type=INT32"`
	MaxInterest   int32   `json:"maxInterest" parquet:"name=maxInterest,type=INT32"`
	FinalInterest int32   `json:"finalInterest" parquet:"name=finalInterest,type=INT32"`
}

func GetSchema(topic string) (*schema.SchemaHandler, error) {
	var sh *schema.SchemaHandler
	var err error

	switch topic {
	case models.TopicConversationEvents:
		sh, err = schema.NewSchemaHandlerFromStruct(new(ConversationEvent))
	case models.TopicRecommendationEvents:
		sh, err = schema.NewSchemaHandlerFromStruct(new(RecommendationEvent))
	case models.TopicSessionMetricsEvents:
		sh, err = schema.NewSchemaHandlerFromStruct(new(SessionMetricsEvent))
	default:
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}

	if err != nil {
		log.Printf("Error creating schema for %s: %v", topic, err)
		return nil, fmt.Errorf("error creating schema for %s: %w", topic, err)
	}

	return sh, nil
}

func NewBaseEvent(eventType, sessionID string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		Timestamp: timestamp.Unix(),
		EventType: eventType,
		SessionID: sessionID,
	}
}
