package dto

import "github.com/grocify/price-service/internal/predict"

type PredictInput struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	StoreName   string `json:"store_name"`
}

type PredictResult struct {
	ProductID   string            `json:"product_id"`
	ProductName string            `json:"product_name"`
	StoreName   string            `json:"store_name,omitempty"`
	Prediction  *predict.Forecast `json:"prediction"`
}

// InsufficientDataResult is the structured non-failure response for a series
// too short to fit; it carries the record count the caller does have.
type InsufficientDataResult struct {
	ProductID        string `json:"product_id"`
	ProductName      string `json:"product_name"`
	Error            string `json:"error"`
	AvailableRecords int    `json:"available_records"`
}
