package repositories

import (
	"context"

	"github.com/chrisdamba/foodiebot/internal/models"
)

// ProductRepository is the durable product catalog. Query applies the
// filter semantics of models.CatalogFilter; SeedIfEmpty is idempotent
// and never overwrites rows on a populated store.
type ProductRepository interface {
	SeedIfEmpty(ctx context.Context, products []*models.Product) (int, error)
	Query(ctx context.Context, filter models.CatalogFilter) ([]*models.Product, error)
	GetAll(ctx context.Context) ([]*models.Product, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// ConversationRepository is the durable append-only conversation log.
type ConversationRepository interface {
	Append(ctx context.Context, turn *models.ConversationTurn) error
	GetBySession(ctx context.Context, sessionID string) ([]*models.ConversationTurn, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
