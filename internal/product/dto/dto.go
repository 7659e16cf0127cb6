package dto

import (
	"github.com/grocify/price-service/internal/model"
	"github.com/grocify/price-service/internal/scraper"
)

type SearchResult struct {
	Product *model.Product  `json:"product"`
	Prices  []scraper.Quote `json:"prices"`
	Message string          `json:"message,omitempty"`
	Warning string          `json:"warning,omitempty"`
}

type Suggestion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
