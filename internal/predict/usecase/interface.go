package usecase

import (
	"context"

	"github.com/grocify/price-service/internal/predict/dto"
)

type UseCase interface {
	// Predict forecasts a product's price trend from stored history. The
	// product may be addressed by id or by name; storeName optionally
	// restricts the series to one store. A too-short series yields an
	// InsufficientDataResult, not an error.
	Predict(ctx context.Context, input *dto.PredictInput) (*dto.PredictResult, *dto.InsufficientDataResult, error)
}
