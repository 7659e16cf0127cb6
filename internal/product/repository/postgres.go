package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/grocify/price-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (id, name, normalized_name, description, category, image_url, created_at, updated_at)
        VALUES (:id, :name, :normalized_name, :description, :category, :image_url, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.DB.GetContext(ctx, &product, `SELECT * FROM products WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindByNormalizedName(ctx context.Context, normalized string) (*model.Product, error) {
	return r.findOne(ctx, `
		SELECT * FROM products WHERE normalized_name = $1
		ORDER BY created_at ASC LIMIT 1
	`, normalized)
}

func (r *PGRepository) FindByNormalizedPrefix(ctx context.Context, normalized string) (*model.Product, error) {
	return r.findOne(ctx, `
		SELECT * FROM products WHERE normalized_name LIKE $1 || '%'
		ORDER BY created_at ASC LIMIT 1
	`, normalized)
}

func (r *PGRepository) FindByNormalizedSubstring(ctx context.Context, normalized string) (*model.Product, error) {
	return r.findOne(ctx, `
		SELECT * FROM products WHERE normalized_name LIKE '%' || $1 || '%'
		ORDER BY created_at ASC LIMIT 1
	`, normalized)
}

func (r *PGRepository) findOne(ctx context.Context, query, arg string) (*model.Product, error) {
	var product model.Product
	err := r.DB.GetContext(ctx, &product, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) Suggest(ctx context.Context, normalizedPrefix string, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	products := []model.Product{}
	err := r.DB.SelectContext(ctx, &products, `
		SELECT * FROM products WHERE normalized_name LIKE $1 || '%'
		ORDER BY name ASC LIMIT $2
	`, normalizedPrefix, limit)
	return products, err
}
