package scraper

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Aggregator fans a product search out to every configured store adapter in
// parallel, one worker per store. Each adapter runs under its own deadline and
// failure domain: a store that errors or times out contributes nothing and
// never disturbs the others.
type Aggregator struct {
	adapters []Adapter
	timeout  time.Duration
	logger   *zap.Logger
}

func NewAggregator(adapters []Adapter, timeout time.Duration, logger *zap.Logger) *Aggregator {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Aggregator{adapters: adapters, timeout: timeout, logger: logger}
}

// Fetch returns quotes deduplicated by store (first completion wins) and
// sorted ascending by price, ties keeping completion order. An empty slice,
// never an error, signals that no store produced a result.
func (a *Aggregator) Fetch(ctx context.Context, productName string) []Quote {
	name := strings.TrimSpace(productName)
	if name == "" {
		return []Quote{}
	}

	results := make(chan Quote, len(a.adapters))
	var wg sync.WaitGroup

	for _, ad := range a.adapters {
		wg.Add(1)
		go func(ad Adapter) {
			defer wg.Done()

			// The per-store deadline also cancels the outbound HTTP request.
			adapterCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			quote, err := ad.Fetch(adapterCtx, name)
			if err != nil {
				a.logger.Warn("store fetch failed",
					zap.String("store", ad.Name()),
					zap.Error(err),
				)
				return
			}
			if quote == nil {
				a.logger.Debug("store returned no match", zap.String("store", ad.Name()))
				return
			}
			results <- *quote
		}(ad)
	}

	wg.Wait()
	close(results)

	seen := make(map[string]struct{}, len(a.adapters))
	quotes := make([]Quote, 0, len(a.adapters))
	for q := range results {
		if _, dup := seen[q.Store]; dup {
			continue
		}
		seen[q.Store] = struct{}{}
		quotes = append(quotes, q)
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Price < quotes[j].Price
	})

	return quotes
}

// Stores lists the configured store names in registration order.
func (a *Aggregator) Stores() []string {
	names := make([]string, len(a.adapters))
	for i, ad := range a.adapters {
		names[i] = ad.Name()
	}
	return names
}

// DefaultAdapters wires the five supported Indian stores.
func DefaultAdapters(client *http.Client, userAgent string) []Adapter {
	return []Adapter{
		NewBigBasket(client, userAgent),
		NewZepto(client, userAgent),
		NewInstamart(client, userAgent),
		NewJioMart(client, userAgent),
		NewAmazonFresh(client, userAgent),
	}
}
