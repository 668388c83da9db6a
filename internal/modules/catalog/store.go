// README: Catalog store backed by PostgreSQL (search + SKU point lookups).
package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("product not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const productColumns = `sku, name, price, currency, stock,
	COALESCE(image_url, ''), COALESCE(category, ''), COALESCE(subcategory, ''), COALESCE(description, '')`

// Search returns products whose text fields match any of the given terms
// (case-insensitive substring match). Result order follows the database
// ordering and is deduplicated by SKU.
func (s *Store) Search(ctx context.Context, terms []string) ([]Product, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	patterns := make([]string, len(terms))
	for i, t := range terms {
		patterns[i] = "%" + t + "%"
	}
	rows, err := s.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE name ILIKE ANY($1)
		   OR description ILIKE ANY($1)
		   OR category ILIKE ANY($1)
		   OR subcategory ILIKE ANY($1)
		ORDER BY stock > 0 DESC, name
	`, patterns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

// FetchBySKUs is a read-only point lookup. Missing SKUs are simply absent
// from the result; callers decide whether that is an error.
func (s *Store) FetchBySKUs(ctx context.Context, skus []string) ([]Product, error) {
	if len(skus) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE sku = ANY($1)
	`, skus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	var out []Product
	seen := map[string]bool{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.SKU, &p.Name, &p.Price, &p.Currency, &p.Stock,
			&p.ImageURL, &p.Category, &p.Subcategory, &p.Description); err != nil {
			return nil, err
		}
		if seen[p.SKU] {
			continue
		}
		seen[p.SKU] = true
		out = append(out, p)
	}
	return out, rows.Err()
}
