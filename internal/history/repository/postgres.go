package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/grocify/price-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Append(ctx context.Context, entry *model.SearchHistory) error {
	query := `
        INSERT INTO search_history (id, user_id, query, results_count, searched_at)
        VALUES (:id, :user_id, :query, :results_count, :searched_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, entry)
	return err
}

func (r *PGRepository) FindByUser(ctx context.Context, userID string, limit int) ([]model.SearchHistory, error) {
	if limit <= 0 {
		limit = 50
	}
	entries := []model.SearchHistory{}
	err := r.DB.SelectContext(ctx, &entries, `
		SELECT * FROM search_history
		WHERE user_id = $1
		ORDER BY searched_at DESC
		LIMIT $2
	`, userID, limit)
	return entries, err
}
