package memory

import (
	"context"
	"sync"

	"github.com/chrisdamba/foodiebot/internal/models"
)

// ProductRepository is the in-process catalog used when Postgres is
// unavailable. It preserves seed order so rankings stay deterministic
// across calls against the same snapshot.
type ProductRepository struct {
	mu       sync.RWMutex
	products []*models.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) SeedIfEmpty(ctx context.Context, products []*models.Product) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.products) > 0 {
		return 0, nil
	}
	r.products = make([]*models.Product, len(products))
	copy(r.products, products)
	return len(products), nil
}

func (r *ProductRepository) Query(ctx context.Context, filter models.CatalogFilter) ([]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.Product
	for _, product := range r.products {
		if filter.Matches(product) {
			matched = append(matched, product)
		}
	}
	return matched, nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*models.Product, len(r.products))
	copy(all, r.products)
	return all, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products), nil
}

func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = nil
	return nil
}
