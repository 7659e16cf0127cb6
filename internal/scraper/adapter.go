// Package scraper fetches live grocery prices from Indian e-commerce stores.
//
// Each store has its own Adapter with identical contract and divergent
// selectors; the Aggregator fans out to all of them. Adapters never propagate
// failures: any network, parse or no-match condition collapses to "no result".
package scraper

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Quote is one store's price observation for a product.
type Quote struct {
	Store      string  `json:"store"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	ProductURL string  `json:"product_url"`
	InStock    bool    `json:"in_stock"`
	Cached     bool    `json:"cached,omitempty"`
}

// Adapter locates the first matching listing on one external store.
// A nil Quote with a nil error means "no matching product"; errors are
// diagnostic only and must be swallowed by the caller.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, productName string) (*Quote, error)
}

// target describes how to pull the first result out of a store's search page.
type target struct {
	store            string
	origin           string
	searchURL        string
	cardSelectors    []string
	priceSelectors   []string
	linkSelector     string
	outOfStockSelect string
}

var nonPriceChars = regexp.MustCompile(`[^\d.]`)

// parsePrice strips currency symbols and separators ("₹1,299.50" -> 1299.50).
func parsePrice(text string) (float64, error) {
	cleaned := nonPriceChars.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0, fmt.Errorf("no numeric price in %q", text)
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", text, err)
	}
	return round2(price), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// resolveLink absolutizes a scraped href against the store origin; empty or
// unusable links fall back to the search URL so a quote never lacks one.
func resolveLink(href, origin, searchURL string) string {
	if href == "" {
		return searchURL
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return origin + href
	}
	return searchURL
}

func fetchDocument(ctx context.Context, client *http.Client, userAgent, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-IN,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// scrapeFirstResult runs the shared search-page flow: load the page, take the
// first product card, extract price, link and stock state.
func scrapeFirstResult(ctx context.Context, client *http.Client, userAgent string, t target) (*Quote, error) {
	doc, err := fetchDocument(ctx, client, userAgent, t.searchURL)
	if err != nil {
		return nil, err
	}

	var card *goquery.Selection
	for _, sel := range t.cardSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			card = s
			break
		}
	}
	if card == nil {
		return nil, nil
	}

	var priceText string
	for _, sel := range t.priceSelectors {
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

	href, _ := card.Find(t.linkSelector).First().Attr("href")
	inStock := card.Find(t.outOfStockSelect).Length() == 0

	return &Quote{
		Store:      t.store,
		Price:      price,
		Currency:   "INR",
		ProductURL: resolveLink(href, t.origin, t.searchURL),
		InStock:    inStock,
	}, nil
}

func searchQuery(productName string) string {
	return strings.ReplaceAll(strings.TrimSpace(productName), " ", "%20")
}
