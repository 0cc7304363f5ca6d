package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chrisdamba/foodiebot/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	pool      *pgxpool.Pool
	batchSize int
}

func NewProductRepository(pool *pgxpool.Pool, batchSize int) *ProductRepository {
	if batchSize <= 0 {
		batchSize = models.DefaultSeedBatchSize
	}
	return &ProductRepository{pool: pool, batchSize: batchSize}
}

func (r *ProductRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS products (
            product_id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            category TEXT NOT NULL,
            description TEXT,
            ingredients JSONB NOT NULL DEFAULT '[]',
            price DOUBLE PRECISION NOT NULL DEFAULT 0,
            calories INTEGER NOT NULL DEFAULT 0,
            prep_time TEXT,
            dietary_tags JSONB NOT NULL DEFAULT '[]',
            mood_tags JSONB NOT NULL DEFAULT '[]',
            allergens JSONB NOT NULL DEFAULT '[]',
            popularity_score INTEGER NOT NULL DEFAULT 0,
            chef_special BOOLEAN NOT NULL DEFAULT FALSE,
            limited_time BOOLEAN NOT NULL DEFAULT FALSE,
            spice_level INTEGER NOT NULL DEFAULT 0,
            image_prompt TEXT
        )
    `)
	return err
}

// SeedIfEmpty loads the catalog only when the products table has no rows.
// A populated table is left untouched and reports zero inserts.
func (r *ProductRepository) SeedIfEmpty(ctx context.Context, products []*models.Product) (int, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for start := 0; start < len(products); start += r.batchSize {
		end := start + r.batchSize
		if end > len(products) {
			end = len(products)
		}
		if err := r.bulkCreate(ctx, products[start:end]); err != nil {
			return inserted, fmt.Errorf("failed to seed products batch: %w", err)
		}
		inserted += end - start
	}
	return inserted, nil
}

func (r *ProductRepository) bulkCreate(ctx context.Context, products []*models.Product) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"products"},
		[]string{
			"product_id", "name", "category", "description", "ingredients",
			"price", "calories", "prep_time", "dietary_tags", "mood_tags",
			"allergens", "popularity_score", "chef_special", "limited_time",
			"spice_level", "image_prompt",
		},
		pgx.CopyFromSlice(len(products), func(i int) ([]interface{}, error) {
			p := products[i]
			ingredients, err := json.Marshal(p.Ingredients)
			if err != nil {
				return nil, err
			}
			dietaryTags, err := json.Marshal(p.DietaryTags)
			if err != nil {
				return nil, err
			}
			moodTags, err := json.Marshal(p.MoodTags)
			if err != nil {
				return nil, err
			}
			allergens, err := json.Marshal(p.Allergens)
			if err != nil {
				return nil, err
			}
			return []interface{}{
				p.ID,
				p.Name,
				p.Category,
				p.Description,
				ingredients,
				p.Price,
				p.Calories,
				p.PrepTime,
				dietaryTags,
				moodTags,
				allergens,
				p.PopularityScore,
				p.ChefSpecial,
				p.LimitedTime,
				p.SpiceLevel,
				p.ImagePrompt,
			}, nil
		}),
	)
	return err
}

// Query pushes the catalog filter down into SQL: inclusive price ceiling,
// case-insensitive category substring. Rows come back ordered by
// product_id so every call sees the same snapshot order.
func (r *ProductRepository) Query(ctx context.Context, filter models.CatalogFilter) ([]*models.Product, error) {
	query := `
        SELECT
            product_id, name, category, description, ingredients,
            price, calories, prep_time, dietary_tags, mood_tags,
            allergens, popularity_score, chef_special, limited_time,
            spice_level, image_prompt
        FROM products
        WHERE 1=1
    `
	var params []interface{}

	if filter.PriceCeiling != nil {
		params = append(params, *filter.PriceCeiling)
		query += fmt.Sprintf(" AND price <= $%d", len(params))
	}
	if filter.Category != "" {
		params = append(params, "%"+filter.Category+"%")
		query += fmt.Sprintf(" AND category ILIKE $%d", len(params))
	}
	query += " ORDER BY product_id"

	rows, err := r.pool.Query(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*models.Product, error) {
	return r.Query(ctx, models.CatalogFilter{})
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	return count, err
}

func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE products")
	return err
}

func scanProducts(rows pgx.Rows) ([]*models.Product, error) {
	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		var ingredients, dietaryTags, moodTags, allergens []byte
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Category,
			&product.Description,
			&ingredients,
			&product.Price,
			&product.Calories,
			&product.PrepTime,
			&dietaryTags,
			&moodTags,
			&allergens,
			&product.PopularityScore,
			&product.ChefSpecial,
			&product.LimitedTime,
			&product.SpiceLevel,
			&product.ImagePrompt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(ingredients, &product.Ingredients); err != nil {
			return nil, fmt.Errorf("failed to decode ingredients for %s: %w", product.ID, err)
		}
		if err := json.Unmarshal(dietaryTags, &product.DietaryTags); err != nil {
			return nil, fmt.Errorf("failed to decode dietary tags for %s: %w", product.ID, err)
		}
		if err := json.Unmarshal(moodTags, &product.MoodTags); err != nil {
			return nil, fmt.Errorf("failed to decode mood tags for %s: %w", product.ID, err)
		}
		if err := json.Unmarshal(allergens, &product.Allergens); err != nil {
			return nil, fmt.Errorf("failed to decode allergens for %s: %w", product.ID, err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
