package scraper

import (
	"context"
	"fmt"
	"net/http"
)

type Zepto struct {
	client    *http.Client
	userAgent string
}

func NewZepto(client *http.Client, userAgent string) *Zepto {
	return &Zepto{client: client, userAgent: userAgent}
}

func (z *Zepto) Name() string { return "Zepto" }

func (z *Zepto) Fetch(ctx context.Context, productName string) (*Quote, error) {
	searchURL := fmt.Sprintf("https://www.zeptonow.com/search?q=%s", searchQuery(productName))
	return scrapeFirstResult(ctx, z.client, z.userAgent, target{
		store:            z.Name(),
		origin:           "https://www.zeptonow.com",
		searchURL:        searchURL,
		cardSelectors:    []string{"div.product-card", "div[data-product-id]"},
		priceSelectors:   []string{"span.price", "div.product-price", "span.selling-price"},
		linkSelector:     "a[href]",
		outOfStockSelect: "span.out-of-stock",
	})
}
