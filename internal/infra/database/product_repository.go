package database

import (
	"context"
	"database/sql"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
)

type ProductRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, slug, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, product.ID, product.Name, product.Slug, product.CreatedAt)
	return err
}

func (r *ProductRepository) DeleteBySlug(ctx context.Context, slug string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE slug = $1`, slug)
	return err
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, slug, created_at FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
