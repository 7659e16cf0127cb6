package model

import "time"

// SearchHistory is an append-only audit log of user searches.
type SearchHistory struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	Query        string    `db:"query" json:"query"`
	ResultsCount int       `db:"results_count" json:"results_count"`
	SearchedAt   time.Time `db:"searched_at" json:"searched_at"`
}
