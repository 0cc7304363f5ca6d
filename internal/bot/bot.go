package bot

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/chrisdamba/foodiebot/internal/bot/producers"
	"github.com/chrisdamba/foodiebot/internal/factories"
	"github.com/chrisdamba/foodiebot/internal/models"
	"github.com/chrisdamba/foodiebot/internal/output"
	"github.com/chrisdamba/foodiebot/internal/repositories"
	"github.com/chrisdamba/foodiebot/internal/repositories/memory"
	"github.com/chrisdamba/foodiebot/internal/repositories/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schollz/progressbar/v3"
)

// Bot runs the conversational loop: one synchronous turn per user
// message, no background tasks. The catalog is read-only after seeding;
// the conversation log is the only per-turn write.
type Bot struct {
	Config  *models.Config
	Session *models.Session

	products []*models.Product
	engine   *RecommendationEngine
	fallback *RecommendationEngine
	convLog  repositories.ConversationRepository
	output   OutputDestination
	pool     *pgxpool.Pool
}

func NewBot(config *models.Config) *Bot {
	sessionFactory := &factories.SessionFactory{}
	session := sessionFactory.CreateSession()
	if config.SessionID != "" {
		session.ID = config.SessionID
	}
	return &Bot{
		Config:  config,
		Session: session,
	}
}

// Run wires the stores and sinks, then serves either the single
// --message turn or the interactive prompt.
func (b *Bot) Run() {
	ctx := context.Background()

	if err := b.loadCatalog(); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	b.output = b.determineOutputDestination()
	defer func() {
		if err := b.output.Close(); err != nil {
			log.Printf("Error closing output: %v", err)
		}
	}()

	b.initStores(ctx)
	defer func() {
		if b.pool != nil {
			b.pool.Close()
		}
	}()

	if b.Config.Message != "" {
		turn, recommendations := b.ProcessMessage(ctx, b.Config.Message)
		b.printTurn(turn, recommendations)
	} else {
		b.repl(ctx)
	}

	b.emitSessionMetrics()
	b.printSessionStats()
}

// loadCatalog builds the product snapshot: either the canonical factory
// catalog or a JSON catalog file of raw records normalized at the seed
// boundary.
func (b *Bot) loadCatalog() error {
	if b.Config.CatalogFile == "" {
		productFactory := &factories.ProductFactory{}
		b.products = productFactory.CreateCatalog()
		return nil
	}

	raw, err := models.LoadRawProducts(b.Config.CatalogFile)
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(len(raw)), "normalizing catalog")
	for _, record := range raw {
		product, err := models.NormalizeProduct(record)
		if err != nil {
			return fmt.Errorf("invalid catalog record: %w", err)
		}
		b.products = append(b.products, product)
		bar.Add(1)
	}
	return nil
}

// initStores seeds the in-memory fallback from the loaded snapshot and,
// when enabled, wires Postgres on top of it. Any Postgres failure is a
// degradation, not a fatal error: the bot keeps answering from the
// fallback catalog.
func (b *Bot) initStores(ctx context.Context) {
	fallbackRepo := memory.NewProductRepository()
	if _, err := fallbackRepo.SeedIfEmpty(ctx, b.products); err != nil {
		log.Fatalf("Failed to seed in-memory catalog: %v", err)
	}
	b.fallback = NewRecommendationEngine(fallbackRepo, b.Config.RecommendationLimit)

	if !b.Config.PostgresEnabled {
		return
	}

	connectCtx := ctx
	if b.Config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, b.Config.ConnectTimeout)
		defer cancel()
	}

	pool, err := pgxpool.New(connectCtx, b.databaseURL())
	if err != nil {
		log.Printf("Database unavailable (using fallback): %v", err)
		return
	}
	if err := pool.Ping(connectCtx); err != nil {
		log.Printf("Database unavailable (using fallback): %v", err)
		pool.Close()
		return
	}

	productRepo := postgres.NewProductRepository(pool, b.Config.SeedBatchSize)
	conversationRepo := postgres.NewConversationRepository(pool)

	if err := productRepo.EnsureSchema(connectCtx); err != nil {
		log.Printf("Database unavailable (using fallback): %v", err)
		pool.Close()
		return
	}
	if err := conversationRepo.EnsureSchema(connectCtx); err != nil {
		log.Printf("Database unavailable (using fallback): %v", err)
		pool.Close()
		return
	}

	inserted, err := productRepo.SeedIfEmpty(connectCtx, b.products)
	if err != nil {
		log.Printf("Database unavailable (using fallback): %v", err)
		pool.Close()
		return
	}
	log.Printf("Database connected, %d products inserted", inserted)

	b.pool = pool
	b.engine = NewRecommendationEngine(productRepo, b.Config.RecommendationLimit)
	b.convLog = conversationRepo
}

func (b *Bot) databaseURL() string {
	db := b.Config.Database
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		db.User, db.Password, db.Host, db.Port, db.DBName, db.SSLMode,
	)
}

// ProcessMessage runs the per-turn pipeline: interest score, intent
// extraction, recommendation, response assembly, session append, durable
// log append and event export. It never fails; degraded collaborators
// are logged and the response still goes out.
func (b *Bot) ProcessMessage(ctx context.Context, text string) (*models.ConversationTurn, []models.ScoredProduct) {
	score := InterestScore(text)
	intent := ExtractIntent(text)

	recommendations := b.recommend(ctx, intent)
	response := BuildResponse(recommendations)

	summaries := make([]models.ProductSummary, 0, len(recommendations))
	for _, rec := range recommendations {
		summaries = append(summaries, rec.Product.Summary())
	}

	turn := models.ConversationTurn{
		Timestamp:           time.Now(),
		UserMessage:         text,
		BotResponse:         response,
		InterestScore:       score,
		RecommendedProducts: summaries,
		SessionID:           b.Session.ID,
	}
	b.Session.AddTurn(turn)

	if b.convLog != nil {
		if err := b.convLog.Append(ctx, &turn); err != nil {
			log.Printf("Failed to log conversation turn: %v", err)
		}
	}

	b.emitTurnEvents(&turn, intent, recommendations)

	return &turn, recommendations
}

// recommend queries the primary engine and falls back to the in-memory
// snapshot on storage errors, so a broken catalog store never aborts the
// conversation.
func (b *Bot) recommend(ctx context.Context, intent models.Intent) []models.ScoredProduct {
	if b.engine != nil {
		recommendations, err := b.engine.Recommend(ctx, intent)
		if err == nil {
			return recommendations
		}
		log.Printf("Catalog query failed, using fallback: %v", err)
	}

	recommendations, err := b.fallback.Recommend(ctx, intent)
	if err != nil {
		// the in-memory source cannot fail a query; keep the turn alive anyway
		log.Printf("Fallback catalog query failed: %v", err)
		return nil
	}
	return recommendations
}

func (b *Bot) emitTurnEvents(turn *models.ConversationTurn, intent models.Intent, recommendations []models.ScoredProduct) {
	if b.output == nil {
		return
	}

	conversationEvent := ConversationEvent{
		BaseEvent:           NewBaseEvent(models.TopicConversationEvents, turn.SessionID, turn.Timestamp),
		UserMessage:         turn.UserMessage,
		BotResponse:         turn.BotResponse,
		InterestScore:       int32(turn.InterestScore),
		Mood:                intent.Mood,
		Category:            intent.Category,
		Keywords:            strings.Join(intent.Keywords, ","),
		RecommendationCount: int32(len(recommendations)),
	}
	if intent.Budget != nil {
		conversationEvent.Budget = *intent.Budget
	}
	b.writeEvent(models.TopicConversationEvents, conversationEvent)

	for rank, rec := range recommendations {
		recommendationEvent := RecommendationEvent{
			BaseEvent:       NewBaseEvent(models.TopicRecommendationEvents, turn.SessionID, turn.Timestamp),
			ProductID:       rec.Product.ID,
			ProductName:     rec.Product.Name,
			Category:        rec.Product.Category,
			Price:           rec.Product.Price,
			Rank:            int32(rank + 1),
			MatchScore:      int32(rec.MatchScore),
			PopularityScore: int32(rec.Product.PopularityScore),
			Reasons:         strings.Join(rec.Reasons, "; "),
		}
		b.writeEvent(models.TopicRecommendationEvents, recommendationEvent)
	}
}

func (b *Bot) emitSessionMetrics() {
	if b.output == nil || len(b.Session.Turns) == 0 {
		return
	}

	stats := ComputeSessionStats(b.Session)
	event := SessionMetricsEvent{
		BaseEvent:     NewBaseEvent(models.TopicSessionMetricsEvents, b.Session.ID, time.Now()),
		Turns:         int32(stats.Turns),
		AvgInterest:   stats.AvgInterest,
		MinInterest:   int32(stats.MinInterest),
		MaxInterest:   int32(stats.MaxInterest),
		FinalInterest: int32(stats.FinalInterest),
	}
	b.writeEvent(models.TopicSessionMetricsEvents, event)
}

func (b *Bot) writeEvent(topic string, event interface{}) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error serializing event for %s: %v", topic, err)
		return
	}
	if err := b.output.WriteMessage(topic, msg); err != nil {
		log.Printf("Failed to write message to %s: %v", topic, err)
	}
}

func (b *Bot) repl(ctx context.Context) {
	fmt.Println("FoodieBot ready. Tell me what kind of food you're craving (e.g., 'spicy burger under $10').")
	fmt.Printf("Session ID: %s\n", b.Session.ID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			break
		}

		turn, recommendations := b.ProcessMessage(ctx, text)
		b.printTurn(turn, recommendations)
	}
}

func (b *Bot) printTurn(turn *models.ConversationTurn, recommendations []models.ScoredProduct) {
	fmt.Printf("FoodieBot: %s (Interest Score: %d%%)\n", turn.BotResponse, turn.InterestScore)
	top := recommendations
	if len(top) > 5 {
		top = top[:5]
	}
	for _, rec := range top {
		fmt.Printf("- %s ($%.2f)\n  %s\n", rec.Product.Name, rec.Product.Price, rec.Product.Description)
	}
}

func (b *Bot) printSessionStats() {
	if len(b.Session.Turns) == 0 {
		return
	}
	stats := ComputeSessionStats(b.Session)
	fmt.Printf(
		"Session %s: %d turns, interest avg %.1f (min %d, max %d, final %d)\n",
		b.Session.ID, stats.Turns, stats.AvgInterest,
		stats.MinInterest, stats.MaxInterest, stats.FinalInterest,
	)
}

// determineOutputDestination picks the event sink from config: Kafka,
// partitioned files (parquet/json/csv), a Postgres warehouse, or the
// console by default.
func (b *Bot) determineOutputDestination() OutputDestination {
	if b.Config.KafkaEnabled {
		saramaProducer, err := producers.NewSaramaProducer(b.Config)
		if err != nil {
			log.Fatalf("Failed to create Sarama producer: %v", err)
		}
		return saramaProducer
	}
	if b.Config.OutputDestination == "postgres" {
		warehouse, err := output.NewPostgresOutput(&b.Config.Database)
		if err != nil {
			log.Fatalf("Failed to create Postgres output: %v", err)
		}
		if err := warehouse.BatchInsertProducts(b.products); err != nil {
			log.Printf("Failed to load product dimension: %v", err)
		}
		return warehouse
	}
	if b.Config.OutputPath != "" {
		switch b.Config.OutputFormat {
		case "parquet":
			output, err := NewParquetOutput(b.Config)
			if err != nil {
				log.Fatalf("Failed to create Parquet output: %s", err)
			}
			return output
		case "json":
			return NewJSONOutput(b.Config.OutputPath, b.Config.OutputFolder)
		case "csv":
			return NewCSVOutput(b.Config.OutputPath, b.Config.OutputFolder)
		default:
			log.Fatalf("Unsupported output format: %s", b.Config.OutputFormat)
		}
	}
	return &ConsoleOutput{}
}
