// Package maintenance prunes aged price history in the background.
package maintenance

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/grocify/price-service/internal/price"
)

type Cleaner struct {
	prices    price.Repository
	interval  time.Duration
	retention time.Duration
	logger    *zap.Logger
}

func NewCleaner(prices price.Repository, interval time.Duration, retentionDays int, logger *zap.Logger) *Cleaner {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &Cleaner{
		prices:    prices,
		interval:  interval,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger,
	}
}

// Run blocks until ctx is cancelled, pruning once immediately and then on
// every tick.
func (c *Cleaner) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Info("maintenance cleaner started",
		zap.Duration("interval", c.interval),
		zap.Duration("retention", c.retention),
	)

	c.prune(ctx)
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("maintenance cleaner stopping")
			return
		case <-ticker.C:
			c.prune(ctx)
		}
	}
}

func (c *Cleaner) prune(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-c.retention)
	removed, err := c.prices.DeleteObservedBefore(ctx, cutoff)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		c.logger.Error("failed to prune price history", zap.Error(err))
		return
	}
	if removed > 0 {
		c.logger.Info("pruned aged price observations",
			zap.Int64("removed", removed),
			zap.Time("cutoff", cutoff),
		)
	}
}
