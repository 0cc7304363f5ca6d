package output

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/chrisdamba/foodiebot/internal/models"
	"github.com/lib/pq"
)

// PostgresOutput is the analytics warehouse sink: turn events land in
// fact tables, the product catalog in a dimension table. It is separate
// from the serving store the recommendation engine reads.
type PostgresOutput struct {
	db *sql.DB
}

func NewPostgresOutput(config *models.DatabaseConfig) (*PostgresOutput, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return &PostgresOutput{db: db}, nil
}

func (p *PostgresOutput) WriteMessage(topic string, msg []byte) error {
	var event map[string]interface{}
	if err := json.Unmarshal(msg, &event); err != nil {
		return err
	}

	table := topicToTable(topic)

	cols, vals, placeholders := buildInsertComponents(event)
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		cols,
		placeholders,
	)

	_, err := p.db.Exec(query, vals...)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	return nil
}

// BatchInsertProducts loads the catalog snapshot into the dim_product
// dimension table.
func (p *PostgresOutput) BatchInsertProducts(products []*models.Product) error {
	return p.ExecTxWithRetry(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(pq.CopyIn("dim_product",
			"product_id", "name", "category", "description", "ingredients",
			"price", "calories", "prep_time", "dietary_tags", "mood_tags",
			"allergens", "popularity_score", "chef_special", "limited_time",
			"spice_level", "loaded_at"))
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		now := time.Now()
		for _, product := range products {
			_, err = stmt.Exec(
				product.ID,
				product.Name,
				product.Category,
				nullableString(product.Description),
				pq.Array(product.Ingredients),
				product.Price,
				product.Calories,
				nullableString(product.PrepTime),
				pq.Array(product.DietaryTags),
				pq.Array(product.MoodTags),
				pq.Array(product.Allergens),
				product.PopularityScore,
				product.ChefSpecial,
				product.LimitedTime,
				product.SpiceLevel,
				now,
			)
			if err != nil {
				return fmt.Errorf("failed to exec statement for product %s: %w", product.ID, err)
			}
		}

		return stmt.Close()
	}, 3)
}

func (p *PostgresOutput) ExecTx(fn func(*sql.Tx) error) error {
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p) // re-throw panic after rollback
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx failed: %v, rollback failed: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (p *PostgresOutput) ExecTxWithRetry(fn func(*sql.Tx) error, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = p.ExecTx(fn)
		if err == nil {
			return nil
		}

		if isRetryableError(err) {
			time.Sleep(time.Duration(i*100) * time.Millisecond)
			continue
		}

		return err // non-retryable error
	}
	return fmt.Errorf("failed after %d retries: %w", maxRetries, err)
}

func (p *PostgresOutput) Close() error {
	return p.db.Close()
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{
		String: s,
		Valid:  true,
	}
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for specific PostgreSQL error codes that indicate retryable errors
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"55P03": // lock_not_available
			return true
		}
	}

	return false
}

func topicToTable(topic string) string {
	tableMap := map[string]string{
		models.TopicConversationEvents:   "fact_conversation",
		models.TopicRecommendationEvents: "fact_recommendation",
		models.TopicSessionMetricsEvents: "fact_session_metrics",
	}

	if table, ok := tableMap[topic]; ok {
		return table
	}
	// if no mapping found, use the topic name as table name
	// after removing the _events suffix
	tableName := strings.TrimSuffix(topic, "_events")
	return "fact_" + tableName
}

func buildInsertComponents(event map[string]interface{}) (string, []interface{}, string) {
	// store columns and values in sorted order for consistent queries
	var columns []string
	var values []interface{}
	var placeholderNum int
	var placeholders []string

	// get sorted keys to ensure consistent order
	keys := make([]string, 0, len(event))
	for k := range event {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		val := event[key]

		switch v := val.(type) {
		case time.Time:
			values = append(values, v)
		case []string:
			values = append(values, pq.Array(v))
		case map[string]interface{}:
			// convert maps to JSONB
			jsonBytes, err := json.Marshal(v)
			if err != nil {
				log.Printf("Error marshaling JSON for key %s: %v", key, err)
				continue
			}
			values = append(values, string(jsonBytes))
		default:
			values = append(values, v)
		}

		columns = append(columns, snakeCaseKey(key))
		placeholderNum++
		placeholders = append(placeholders, fmt.Sprintf("$%d", placeholderNum))
	}

	return strings.Join(columns, ", "),
		values,
		strings.Join(placeholders, ", ")
}

func snakeCaseKey(key string) string {
	var result strings.Builder
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}
