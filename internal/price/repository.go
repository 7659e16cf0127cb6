package price

import (
	"context"
	"time"

	"github.com/grocify/price-service/internal/model"
	"github.com/grocify/price-service/internal/scraper"
)

// Repository is the price history store. UpsertDaily is transactional: either
// every quote in the batch lands or none do.
type Repository interface {
	// UpsertDaily collapses same-day observations: a quote for a (product,
	// store) pair that already has an observation within [UTC start of day,
	// now] overwrites that row; otherwise a new row is inserted.
	UpsertDaily(ctx context.Context, productID string, quotes []scraper.Quote, now time.Time) error

	// FindOrdered returns observations ascending by observed_at, optionally
	// filtered to one store (empty storeName means all stores).
	FindOrdered(ctx context.Context, productID, storeName string) ([]model.PriceObservation, error)

	// LatestPerStore maps each store to its most recent observation.
	LatestPerStore(ctx context.Context, productID string) (map[string]model.PriceObservation, error)

	// DeleteObservedBefore prunes history older than cutoff, returning the
	// number of rows removed.
	DeleteObservedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
