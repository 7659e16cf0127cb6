package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type AmazonFresh struct {
	client    *http.Client
	userAgent string
}

func NewAmazonFresh(client *http.Client, userAgent string) *AmazonFresh {
	return &AmazonFresh{client: client, userAgent: userAgent}
}

func (a *AmazonFresh) Name() string { return "Amazon Fresh" }

// Fetch diverges from the shared flow because Amazon signals stock state
// through availability text rather than a dedicated element.
func (a *AmazonFresh) Fetch(ctx context.Context, productName string) (*Quote, error) {
	query := strings.ReplaceAll(strings.TrimSpace(productName), " ", "+")
	searchURL := fmt.Sprintf("https://www.amazon.in/s?k=%s&rh=n%%3A4859498011", query)

	doc, err := fetchDocument(ctx, a.client, a.userAgent, searchURL)
	if err != nil {
		return nil, err
	}

	card := doc.Find("div[data-component-type='s-search-result']").First()
	if card.Length() == 0 {
		return nil, nil
	}

	var priceText string
	for _, sel := range []string{"span.a-price-whole", "span.a-price", "span.a-offscreen"} {
		if s := card.Find(sel).First(); s.Length() > 0 {
			priceText = strings.TrimSpace(s.Text())
			break
		}
	}
	if priceText == "" {
		return nil, nil
	}
	price, err := parsePrice(priceText)
	if err != nil {
		return nil, err
	}

	href, _ := card.Find("a.a-link-normal[href]").First().Attr("href")

	availability := strings.ToLower(card.Find("span.a-color-state").Text())
	inStock := !strings.Contains(availability, "out of stock")

	return &Quote{
		Store:      a.Name(),
		Price:      price,
		Currency:   "INR",
		ProductURL: resolveLink(href, "https://www.amazon.in", searchURL),
		InStock:    inStock,
	}, nil
}
