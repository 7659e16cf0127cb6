package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/grocify/price-service/internal/model"
	"github.com/grocify/price-service/internal/predict"
	"github.com/grocify/price-service/internal/predict/dto"
	"github.com/grocify/price-service/internal/price"
	"github.com/grocify/price-service/internal/product"
	"github.com/grocify/price-service/pkg/apperrors"
)

type predictUseCase struct {
	products product.Repository
	prices   price.Repository
	opts     predict.Options
	logger   *zap.Logger
}

func NewPredictUseCase(products product.Repository, prices price.Repository, opts predict.Options, logger *zap.Logger) UseCase {
	return &predictUseCase{
		products: products,
		prices:   prices,
		opts:     opts,
		logger:   logger,
	}
}

func (uc *predictUseCase) Predict(ctx context.Context, input *dto.PredictInput) (*dto.PredictResult, *dto.InsufficientDataResult, error) {
	p, err := uc.resolveProduct(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	observations, err := uc.prices.FindOrdered(ctx, p.ID, input.StoreName)
	if err != nil {
		return nil, nil, err
	}

	points := make([]predict.Point, len(observations))
	for i, obs := range observations {
		points[i] = predict.Point{At: obs.ObservedAt, Price: obs.Price}
	}

	forecast, err := predict.Predict(points, input.StoreName, uc.opts)
	if err != nil {
		if insufficient, ok := err.(*predict.InsufficientDataError); ok {
			return nil, &dto.InsufficientDataResult{
				ProductID:        p.ID,
				ProductName:      p.Name,
				Error:            "Not enough historical data for prediction. Need at least 3 price records.",
				AvailableRecords: insufficient.Available,
			}, nil
		}
		return nil, nil, err
	}

	return &dto.PredictResult{
		ProductID:   p.ID,
		ProductName: p.Name,
		StoreName:   input.StoreName,
		Prediction:  forecast,
	}, nil, nil
}

func (uc *predictUseCase) resolveProduct(ctx context.Context, input *dto.PredictInput) (*model.Product, error) {
	var p *model.Product
	var err error

	switch {
	case input.ProductID != "":
		p, err = uc.products.FindByID(ctx, input.ProductID)
	case input.ProductName != "":
		p, err = uc.products.FindByNormalizedName(ctx, product.Normalize(input.ProductName))
	default:
		return nil, apperrors.Validationf("product_id or product_name is required")
	}

	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFoundf("product not found")
	}
	return p, nil
}
