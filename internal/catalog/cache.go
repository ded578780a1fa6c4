package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"shopkart/pkg/models"
)

// Cache is the sqlite-backed local product cache.
type Cache struct {
	DB *sql.DB
}

func NewCache(db *sql.DB) *Cache {
	return &Cache{DB: db}
}

// Replace swaps the cached catalog wholesale for the given products.
func (c *Cache) Replace(ctx context.Context, products []models.Product) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache replace: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear product cache: %w", err)
	}
	for _, p := range products {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO products (id, name, category, cost, rating, image_url)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.Category, p.Cost, p.Rating, p.Image)
		if err != nil {
			return fmt.Errorf("cache product %s: %w", p.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit cache replace: %w", err)
	}
	return nil
}

// Load returns all cached products in insertion order.
func (c *Cache) Load(ctx context.Context) ([]models.Product, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT id, name, category, cost, rating, image_url
		FROM products
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("load product cache: %w", err)
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Cost, &p.Rating, &p.Image); err != nil {
			return nil, fmt.Errorf("scan cached product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
