package history

import (
	"context"

	"github.com/grocify/price-service/internal/model"
)

// Repository is an append-only audit log of user searches.
type Repository interface {
	Append(ctx context.Context, entry *model.SearchHistory) error
	FindByUser(ctx context.Context, userID string, limit int) ([]model.SearchHistory, error)
}
