package product

import (
	"context"

	"github.com/grocify/price-service/internal/model"
	"github.com/grocify/price-service/internal/product/dto"
)

type UseCase interface {
	// Search aggregates live prices for a product, persisting observations
	// and the user's search. It degrades to cached history, then to an empty
	// price list with a warning; it never fails because stores are down.
	Search(ctx context.Context, userID, productName string) (*dto.SearchResult, error)

	GetProduct(ctx context.Context, id string) (*model.Product, error)
	Suggest(ctx context.Context, query string) ([]dto.Suggestion, error)
	SearchHistory(ctx context.Context, userID string) ([]model.SearchHistory, error)
}
