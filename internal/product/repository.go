package product

import (
	"context"

	"github.com/grocify/price-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)

	// Normalized-name matching, tried in order of strictness. Each returns
	// (nil, nil) when nothing matches; prefix and substring lookups prefer
	// the oldest product to keep matching stable over time.
	FindByNormalizedName(ctx context.Context, normalized string) (*model.Product, error)
	FindByNormalizedPrefix(ctx context.Context, normalized string) (*model.Product, error)
	FindByNormalizedSubstring(ctx context.Context, normalized string) (*model.Product, error)

	// Suggest lists products whose normalized name starts with the prefix,
	// ordered by display name.
	Suggest(ctx context.Context, normalizedPrefix string, limit int) ([]model.Product, error)
}
