package model

import "time"

// PriceObservation is one store's price for a product at a point in time.
// At most one observation exists per (product, store, UTC calendar day):
// a same-day re-scrape updates the row in place instead of inserting.
type PriceObservation struct {
	ID         string    `db:"id" json:"id"`
	ProductID  string    `db:"product_id" json:"product_id"`
	StoreName  string    `db:"store_name" json:"store_name"`
	Price      float64   `db:"price" json:"price"`
	Currency   string    `db:"currency" json:"currency"`
	ProductURL string    `db:"product_url" json:"product_url"`
	InStock    bool      `db:"in_stock" json:"in_stock"`
	ObservedAt time.Time `db:"observed_at" json:"observed_at"`
}
