package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grocify/price-service/internal/history"
	"github.com/grocify/price-service/internal/model"
	"github.com/grocify/price-service/internal/price"
	"github.com/grocify/price-service/internal/product"
	"github.com/grocify/price-service/internal/product/dto"
	"github.com/grocify/price-service/internal/scraper"
	"github.com/grocify/price-service/pkg/apperrors"
	"github.com/grocify/price-service/pkg/cache"
)

// QuoteFetcher is the live-price aggregation boundary.
type QuoteFetcher interface {
	Fetch(ctx context.Context, productName string) []scraper.Quote
}

const cachedDataWarning = "⚠ Live data unavailable, showing last updated prices"

type productUseCase struct {
	repo     product.Repository
	prices   price.Repository
	searches history.Repository
	fetcher  QuoteFetcher
	cache    *cache.RedisClient
	quoteTTL time.Duration
	logger   *zap.Logger
}

func NewProductUseCase(
	repo product.Repository,
	prices price.Repository,
	searches history.Repository,
	fetcher QuoteFetcher,
	cacheClient *cache.RedisClient,
	quoteTTL time.Duration,
	logger *zap.Logger,
) product.UseCase {
	return &productUseCase{
		repo:     repo,
		prices:   prices,
		searches: searches,
		fetcher:  fetcher,
		cache:    cacheClient,
		quoteTTL: quoteTTL,
		logger:   logger,
	}
}

func (uc *productUseCase) Search(ctx context.Context, userID, productName string) (*dto.SearchResult, error) {
	normalized := product.Normalize(productName)
	if normalized == "" {
		return nil, apperrors.Validationf("product name cannot be empty")
	}

	p, err := uc.matchOrCreate(ctx, productName, normalized)
	if err != nil {
		return nil, err
	}

	// Recent live quotes may still be cached; otherwise scrape all stores.
	quotes, fromQuoteCache := uc.recentQuotes(ctx, normalized)
	if !fromQuoteCache {
		quotes = uc.fetcher.Fetch(ctx, productName)
	}

	usedHistory := false
	if len(quotes) == 0 {
		quotes = uc.historicalFallback(ctx, p.ID)
		usedHistory = true
	}

	if len(quotes) == 0 {
		// The product row exists even when nothing else does; this is a
		// degraded success, never a 404.
		uc.appendHistory(ctx, userID, productName, 0)
		return &dto.SearchResult{
			Product: p,
			Prices:  []scraper.Quote{},
			Warning: cachedDataWarning,
			Message: fmt.Sprintf("No cached prices yet for %s. Try again later.", p.Name),
		}, nil
	}

	if err := uc.prices.UpsertDaily(ctx, p.ID, quotes, time.Now().UTC()); err != nil {
		uc.logger.Error("failed to persist price observations",
			zap.String("product_id", p.ID), zap.Error(err))
		return nil, err
	}

	uc.appendHistory(ctx, userID, productName, len(quotes))

	if !fromQuoteCache && !usedHistory {
		uc.storeQuotes(ctx, normalized, quotes)
	}

	result := &dto.SearchResult{
		Product: p,
		Prices:  quotes,
		Message: fmt.Sprintf("Found %d prices for %s", len(quotes), productName),
	}
	if usedHistory {
		result.Warning = cachedDataWarning
	}
	return result, nil
}

// matchOrCreate resolves the search term to a product row: exact normalized
// match, then prefix, then substring (oldest first), creating a fresh product
// when nothing matches.
func (uc *productUseCase) matchOrCreate(ctx context.Context, name, normalized string) (*model.Product, error) {
	p, err := uc.repo.FindByNormalizedName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if p == nil {
		if p, err = uc.repo.FindByNormalizedPrefix(ctx, normalized); err != nil {
			return nil, err
		}
	}
	if p == nil {
		if p, err = uc.repo.FindByNormalizedSubstring(ctx, normalized); err != nil {
			return nil, err
		}
	}
	if p != nil {
		return p, nil
	}

	now := time.Now().UTC()
	description := fmt.Sprintf("Price comparison for %s", name)
	p = &model.Product{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:           name,
		NormalizedName: normalized,
		Description:    &description,
		Category:       "Grocery",
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// historicalFallback rebuilds a price list from the newest stored observation
// per store when live scraping yields nothing.
func (uc *productUseCase) historicalFallback(ctx context.Context, productID string) []scraper.Quote {
	latest, err := uc.prices.LatestPerStore(ctx, productID)
	if err != nil {
		uc.logger.Error("failed to load cached prices", zap.String("product_id", productID), zap.Error(err))
		return nil
	}

	quotes := make([]scraper.Quote, 0, len(latest))
	for _, obs := range latest {
		quotes = append(quotes, scraper.Quote{
			Store:      obs.StoreName,
			Price:      obs.Price,
			Currency:   obs.Currency,
			ProductURL: obs.ProductURL,
			InStock:    obs.InStock,
			Cached:     true,
		})
	}
	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].Price < quotes[j].Price })
	return quotes
}

func (uc *productUseCase) appendHistory(ctx context.Context, userID, query string, count int) {
	entry := &model.SearchHistory{
		ID:           uuid.New().String(),
		UserID:       userID,
		Query:        query,
		ResultsCount: count,
		SearchedAt:   time.Now().UTC(),
	}
	if err := uc.searches.Append(ctx, entry); err != nil {
		// History is an audit log; losing an entry must not fail the search.
		uc.logger.Error("failed to append search history", zap.String("user_id", userID), zap.Error(err))
	}
}

func (uc *productUseCase) recentQuotes(ctx context.Context, normalized string) ([]scraper.Quote, bool) {
	if uc.cache == nil {
		return nil, false
	}
	val, err := uc.cache.Client.Get(ctx, quoteCacheKey(normalized)).Result()
	if err != nil {
		return nil, false
	}
	var quotes []scraper.Quote
	if err := json.Unmarshal([]byte(val), &quotes); err != nil || len(quotes) == 0 {
		return nil, false
	}
	return quotes, true
}

func (uc *productUseCase) storeQuotes(ctx context.Context, normalized string, quotes []scraper.Quote) {
	if uc.cache == nil {
		return
	}
	data, err := json.Marshal(quotes)
	if err != nil {
		return
	}
	if err := uc.cache.Client.Set(ctx, quoteCacheKey(normalized), data, uc.quoteTTL).Err(); err != nil {
		uc.logger.Debug("failed to cache quotes", zap.Error(err))
	}
}

func quoteCacheKey(normalized string) string {
	return "quotes:" + normalized
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFoundf("product not found")
	}

	observations, err := uc.prices.FindOrdered(ctx, id, "")
	if err != nil {
		return nil, err
	}
	p.Prices = observations
	return p, nil
}

func (uc *productUseCase) Suggest(ctx context.Context, query string) ([]dto.Suggestion, error) {
	normalized := product.Normalize(query)
	if normalized == "" {
		return []dto.Suggestion{}, nil
	}

	products, err := uc.repo.Suggest(ctx, normalized, 10)
	if err != nil {
		// Autocomplete degrades to no suggestions instead of failing.
		uc.logger.Error("suggest query failed", zap.Error(err))
		return []dto.Suggestion{}, nil
	}

	seen := make(map[string]struct{}, len(products))
	suggestions := make([]dto.Suggestion, 0, len(products))
	for _, p := range products {
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}
		suggestions = append(suggestions, dto.Suggestion{ID: p.ID, Name: p.Name})
	}
	return suggestions, nil
}

func (uc *productUseCase) SearchHistory(ctx context.Context, userID string) ([]model.SearchHistory, error) {
	return uc.searches.FindByUser(ctx, userID, 50)
}
