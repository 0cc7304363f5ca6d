package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chrisdamba/foodiebot/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ConversationRepository struct {
	pool *pgxpool.Pool
}

func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

func (r *ConversationRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS conversations (
            id BIGSERIAL PRIMARY KEY,
            timestamp TIMESTAMPTZ NOT NULL,
            user_message TEXT NOT NULL,
            bot_response TEXT NOT NULL,
            interest_score INTEGER NOT NULL,
            recommended_products JSONB NOT NULL DEFAULT '[]',
            session_id TEXT NOT NULL
        )
    `)
	return err
}

// Append durably records one turn. The surrogate key preserves the order
// turns were produced within a session.
func (r *ConversationRepository) Append(ctx context.Context, turn *models.ConversationTurn) error {
	recommended, err := json.Marshal(turn.RecommendedProducts)
	if err != nil {
		return fmt.Errorf("failed to encode recommended products: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
        INSERT INTO conversations (
            timestamp, user_message, bot_response, interest_score,
            recommended_products, session_id
        ) VALUES ($1, $2, $3, $4, $5, $6)
    `,
		turn.Timestamp,
		turn.UserMessage,
		turn.BotResponse,
		turn.InterestScore,
		recommended,
		turn.SessionID,
	)
	return err
}

func (r *ConversationRepository) GetBySession(ctx context.Context, sessionID string) ([]*models.ConversationTurn, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT timestamp, user_message, bot_response, interest_score,
               recommended_products, session_id
        FROM conversations
        WHERE session_id = $1
        ORDER BY id
    `, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []*models.ConversationTurn
	for rows.Next() {
		turn := &models.ConversationTurn{}
		var recommended []byte
		err := rows.Scan(
			&turn.Timestamp,
			&turn.UserMessage,
			&turn.BotResponse,
			&turn.InterestScore,
			&recommended,
			&turn.SessionID,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(recommended, &turn.RecommendedProducts); err != nil {
			return nil, fmt.Errorf("failed to decode recommended products: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}

func (r *ConversationRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM conversations").Scan(&count)
	return count, err
}

func (r *ConversationRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE conversations")
	return err
}
