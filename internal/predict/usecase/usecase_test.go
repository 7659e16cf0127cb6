package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/grocify/price-service/internal/model"
	"github.com/grocify/price-service/internal/predict"
	"github.com/grocify/price-service/internal/predict/dto"
	"github.com/grocify/price-service/internal/scraper"
	"github.com/grocify/price-service/pkg/apperrors"
)

type fakeProductRepo struct {
	product *model.Product
}

func (f *fakeProductRepo) Create(context.Context, *model.Product) error { return nil }

func (f *fakeProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	if f.product != nil && f.product.ID == id {
		return f.product, nil
	}
	return nil, nil
}

func (f *fakeProductRepo) FindByNormalizedName(_ context.Context, normalized string) (*model.Product, error) {
	if f.product != nil && f.product.NormalizedName == normalized {
		return f.product, nil
	}
	return nil, nil
}

func (f *fakeProductRepo) FindByNormalizedPrefix(context.Context, string) (*model.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) FindByNormalizedSubstring(context.Context, string) (*model.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Suggest(context.Context, string, int) ([]model.Product, error) {
	return nil, nil
}

type fakePriceRepo struct {
	observations []model.PriceObservation
	gotStore     string
}

func (f *fakePriceRepo) UpsertDaily(context.Context, string, []scraper.Quote, time.Time) error {
	return nil
}

func (f *fakePriceRepo) FindOrdered(_ context.Context, _, storeName string) ([]model.PriceObservation, error) {
	f.gotStore = storeName
	return f.observations, nil
}

func (f *fakePriceRepo) LatestPerStore(context.Context, string) (map[string]model.PriceObservation, error) {
	return nil, nil
}

func (f *fakePriceRepo) DeleteObservedBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func dailyObservations(start time.Time, prices ...float64) []model.PriceObservation {
	obs := make([]model.PriceObservation, len(prices))
	for i, p := range prices {
		obs[i] = model.PriceObservation{StoreName: "Zepto", Price: p, ObservedAt: start.AddDate(0, 0, i)}
	}
	return obs
}

func testProduct() *model.Product {
	return &model.Product{
		BaseModel:      model.BaseModel{ID: "p-1"},
		Name:           "Amul Milk",
		NormalizedName: "amul milk",
	}
}

func TestPredictByProductID(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := &fakePriceRepo{observations: dailyObservations(start, 10, 11, 12)}
	uc := NewPredictUseCase(&fakeProductRepo{product: testProduct()}, prices, predict.DefaultOptions(), zap.NewNop())

	result, insufficient, err := uc.Predict(context.Background(), &dto.PredictInput{ProductID: "p-1", StoreName: "Zepto"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if insufficient != nil {
		t.Fatalf("unexpected insufficient-data result: %+v", insufficient)
	}
	if result.ProductID != "p-1" || result.StoreName != "Zepto" {
		t.Fatalf("unexpected result envelope: %+v", result)
	}
	if result.Prediction == nil || result.Prediction.Trend != "increasing" {
		t.Fatalf("unexpected forecast: %+v", result.Prediction)
	}
	if prices.gotStore != "Zepto" {
		t.Fatalf("store filter not forwarded, got %q", prices.gotStore)
	}
}

func TestPredictByProductName(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := &fakePriceRepo{observations: dailyObservations(start, 10, 10, 10)}
	uc := NewPredictUseCase(&fakeProductRepo{product: testProduct()}, prices, predict.DefaultOptions(), zap.NewNop())

	result, _, err := uc.Predict(context.Background(), &dto.PredictInput{ProductName: "AMUL Milk!"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ProductName != "Amul Milk" {
		t.Fatalf("resolved wrong product: %+v", result)
	}
}

func TestPredictInsufficientHistory(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := &fakePriceRepo{observations: dailyObservations(start, 10, 11)}
	uc := NewPredictUseCase(&fakeProductRepo{product: testProduct()}, prices, predict.DefaultOptions(), zap.NewNop())

	result, insufficient, err := uc.Predict(context.Background(), &dto.PredictInput{ProductID: "p-1"})
	if err != nil {
		t.Fatalf("insufficient history must not be an error: %v", err)
	}
	if result != nil {
		t.Fatalf("unexpected forecast: %+v", result)
	}
	if insufficient == nil || insufficient.AvailableRecords != 2 {
		t.Fatalf("unexpected insufficient-data result: %+v", insufficient)
	}
	if insufficient.Error != "Not enough historical data for prediction. Need at least 3 price records." {
		t.Fatalf("unexpected message %q", insufficient.Error)
	}
}

func TestPredictInputValidation(t *testing.T) {
	uc := NewPredictUseCase(&fakeProductRepo{}, &fakePriceRepo{}, predict.DefaultOptions(), zap.NewNop())

	_, _, err := uc.Predict(context.Background(), &dto.PredictInput{})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, _, err = uc.Predict(context.Background(), &dto.PredictInput{ProductID: "missing"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
