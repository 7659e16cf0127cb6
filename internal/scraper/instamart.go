package scraper

import (
	"context"
	"fmt"
	"net/http"
)

type Instamart struct {
	client    *http.Client
	userAgent string
}

func NewInstamart(client *http.Client, userAgent string) *Instamart {
	return &Instamart{client: client, userAgent: userAgent}
}

func (i *Instamart) Name() string { return "Swiggy Instamart" }

func (i *Instamart) Fetch(ctx context.Context, productName string) (*Quote, error) {
	searchURL := fmt.Sprintf("https://www.swiggy.com/instamart/search?custom_back=true&query=%s", searchQuery(productName))
	return scrapeFirstResult(ctx, i.client, i.userAgent, target{
		store:            i.Name(),
		origin:           "https://www.swiggy.com",
		searchURL:        searchURL,
		cardSelectors:    []string{"div[data-testid='default_container_ux4']", "div.product-card"},
		priceSelectors:   []string{"div[data-testid='item-offer-price']", "span.rupee", "div.price"},
		linkSelector:     "a[href]",
		outOfStockSelect: "div.sold-out, span.out-of-stock",
	})
}
