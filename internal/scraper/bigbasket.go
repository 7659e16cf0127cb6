package scraper

import (
	"context"
	"fmt"
	"net/http"
)

type BigBasket struct {
	client    *http.Client
	userAgent string
}

func NewBigBasket(client *http.Client, userAgent string) *BigBasket {
	return &BigBasket{client: client, userAgent: userAgent}
}

func (b *BigBasket) Name() string { return "BigBasket" }

func (b *BigBasket) Fetch(ctx context.Context, productName string) (*Quote, error) {
	searchURL := fmt.Sprintf("https://www.bigbasket.com/ps/?q=%s", searchQuery(productName))
	return scrapeFirstResult(ctx, b.client, b.userAgent, target{
		store:            b.Name(),
		origin:           "https://www.bigbasket.com",
		searchURL:        searchURL,
		cardSelectors:    []string{"div.product-item", "div[data-product-id]"},
		priceSelectors:   []string{"span.discnt-price", "span.price", "div.price"},
		linkSelector:     "a[href]",
		outOfStockSelect: "span.out-of-stock, div.out-of-stock",
	})
}
