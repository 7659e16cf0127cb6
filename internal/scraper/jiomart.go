package scraper

import (
	"context"
	"fmt"
	"net/http"
)

type JioMart struct {
	client    *http.Client
	userAgent string
}

func NewJioMart(client *http.Client, userAgent string) *JioMart {
	return &JioMart{client: client, userAgent: userAgent}
}

func (j *JioMart) Name() string { return "JioMart" }

func (j *JioMart) Fetch(ctx context.Context, productName string) (*Quote, error) {
	searchURL := fmt.Sprintf("https://www.jiomart.com/search/%s", searchQuery(productName))
	return scrapeFirstResult(ctx, j.client, j.userAgent, target{
		store:            j.Name(),
		origin:           "https://www.jiomart.com",
		searchURL:        searchURL,
		cardSelectors:    []string{"li.ais-InfiniteHits-item", "div.plp-card-wrapper"},
		priceSelectors:   []string{"span.jm-heading-xxs", "span.final-price", "div.price"},
		linkSelector:     "a[href]",
		outOfStockSelect: "div.out-of-stock-tag, span.out-of-stock",
	})
}
