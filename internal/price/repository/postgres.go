package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/grocify/price-service/internal/model"
	"github.com/grocify/price-service/internal/scraper"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) UpsertDaily(ctx context.Context, productID string, quotes []scraper.Quote, now time.Time) error {
	if len(quotes) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Same-day window in UTC; the date component of observed_at is the
	// coarse dedup key, not a storage-level uniqueness constraint.
	startOfDay := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)

	seen := make(map[string]struct{}, len(quotes))
	for _, q := range quotes {
		if q.Store == "" {
			continue
		}
		if _, dup := seen[q.Store]; dup {
			continue
		}
		seen[q.Store] = struct{}{}

		var existingID string
		err := tx.GetContext(ctx, &existingID, `
			SELECT id FROM price_observations
			WHERE product_id = $1 AND store_name = $2
			  AND observed_at >= $3 AND observed_at <= $4
			ORDER BY observed_at DESC
			LIMIT 1
		`, productID, q.Store, startOfDay, now)

		switch {
		case err == nil:
			_, err = tx.ExecContext(ctx, `
				UPDATE price_observations
				SET price = $1, currency = $2, product_url = $3, in_stock = $4, observed_at = $5
				WHERE id = $6
			`, q.Price, q.Currency, q.ProductURL, q.InStock, now, existingID)
			if err != nil {
				return err
			}
		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.ExecContext(ctx, `
				INSERT INTO price_observations (id, product_id, store_name, price, currency, product_url, in_stock, observed_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, uuid.New().String(), productID, q.Store, q.Price, q.Currency, q.ProductURL, q.InStock, now)
			if err != nil {
				return err
			}
		default:
			return err
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindOrdered(ctx context.Context, productID, storeName string) ([]model.PriceObservation, error) {
	observations := []model.PriceObservation{}

	if storeName != "" {
		err := r.DB.SelectContext(ctx, &observations, `
			SELECT * FROM price_observations
			WHERE product_id = $1 AND store_name = $2
			ORDER BY observed_at ASC
		`, productID, storeName)
		return observations, err
	}

	err := r.DB.SelectContext(ctx, &observations, `
		SELECT * FROM price_observations
		WHERE product_id = $1
		ORDER BY observed_at ASC
	`, productID)
	return observations, err
}

func (r *PGRepository) LatestPerStore(ctx context.Context, productID string) (map[string]model.PriceObservation, error) {
	var observations []model.PriceObservation
	err := r.DB.SelectContext(ctx, &observations, `
		SELECT * FROM price_observations
		WHERE product_id = $1
		ORDER BY observed_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]model.PriceObservation)
	for _, obs := range observations {
		if _, ok := latest[obs.StoreName]; !ok {
			latest[obs.StoreName] = obs
		}
	}
	return latest, nil
}

func (r *PGRepository) DeleteObservedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM price_observations WHERE observed_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
